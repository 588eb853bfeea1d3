package interp

import (
	"sort"
	"strings"

	"github.com/maruel/natural"
	"github.com/samber/lo"

	nerr "github.com/nohlang/go-noh/internal/errors"
)

// installBuiltins populates frame 0 with the named builtins. The expression
// grammar has no call syntax, so these are listable and referenceable values
// rather than callable functions.
func (i *Interpreter) installBuiltins() {
	builtins := i.scopes.Builtins()
	for _, name := range []string{
		"sqrt", "sin", "cos", "tan",
		"max", "min", "abs", "round",
		"int", "str", "len",
		"log", "exp",
		"현재시간", "현재날짜",
		"JSON변환", "JSON문자열화",
	} {
		builtins.Set(name, &BuiltinValue{Name: name})
	}
}

func (i *Interpreter) handleHelp(_ []string) {
	i.echo(strings.TrimSpace(helpText))
}

func (i *Interpreter) handlePrint(groups []string) {
	i.echo(groups[1])
}

func (i *Interpreter) handleDeclare(groups []string) {
	if err := i.scopes.Declare(groups[1]); err != nil {
		i.reportErr(err)
	}
}

// handleAssign evaluates the right-hand side and writes it to the nearest
// enclosing frame binding the name. When evaluation fails the statement is
// abandoned; the evaluation failure is the diagnostic.
func (i *Interpreter) handleAssign(groups []string) {
	value, ok := i.evaluate(groups[2])
	if !ok {
		return
	}
	if err := i.scopes.Assign(groups[1], value); err != nil {
		i.reportErr(err)
	}
}

func (i *Interpreter) handleOutput(groups []string) {
	v, ok := i.scopes.Lookup(groups[1])
	if !ok {
		i.reportErr(nerr.New(nerr.NameError, "변수 %q 가 선언되지 않음", groups[1]))
		return
	}
	i.echo(v.String())
}

// handleListVars prints every visible binding in natural name order.
func (i *Interpreter) handleListVars(_ []string) {
	combined := i.scopes.Combined()
	names := lo.Keys(combined)
	sort.Slice(names, func(a, b int) bool { return natural.Less(names[a], names[b]) })
	for _, name := range names {
		i.echof("%s = %s", name, combined[name])
	}
}

func (i *Interpreter) handleDeleteVar(groups []string) {
	name := groups[1]
	if i.scopes.Current().Delete(name) {
		i.echof("변수 %q 삭제됨", name)
		return
	}
	i.reportErr(nerr.New(nerr.NameError, "변수 %q 가 현재 스코프에 없음", name))
}

// handleState prints a snapshot of the combined scope.
func (i *Interpreter) handleState(_ []string) {
	combined := i.scopes.Combined()
	names := lo.Keys(combined)
	sort.Slice(names, func(a, b int) bool { return natural.Less(names[a], names[b]) })
	parts := make([]string, len(names))
	for idx, name := range names {
		parts[idx] = name + ": " + Repr(combined[name])
	}
	i.echof("현재 상태: {%s}", strings.Join(parts, ", "))
}

func (i *Interpreter) handleVersion(_ []string) {
	i.echof("Interpreter version: %s", Version)
}

// handleReset drops every user frame, leaving the builtins frame and a fresh
// global frame.
func (i *Interpreter) handleReset(_ []string) {
	i.scopes.Replace([]*Frame{i.scopes.Builtins(), NewFrame()})
	i.echo("스코프 초기화 완료")
}

// handleBuiltinList prints the names bound in the builtins frame.
func (i *Interpreter) handleBuiltinList(_ []string) {
	builtins := i.scopes.Builtins()
	names := lo.Filter(builtins.Names(), func(name string, _ int) bool {
		_, isBuiltin := mustGet(builtins, name).(*BuiltinValue)
		return isBuiltin
	})
	sort.Slice(names, func(a, b int) bool { return natural.Less(names[a], names[b]) })
	i.echof("내장 함수 목록: [%s]", strings.Join(names, ", "))
}

func mustGet(f *Frame, name string) Value {
	v, _ := f.Get(name)
	return v
}

func (i *Interpreter) handleSetPrompt(groups []string) {
	i.prompt = groups[1] + " "
	i.echof("프롬프트가 %q로 설정됨", groups[1])
}

// handleCommandCatalog lists every registered statement template.
func (i *Interpreter) handleCommandCatalog(_ []string) {
	templates := make([]string, len(i.commands))
	for idx, cmd := range i.commands {
		templates[idx] = cmd.template
	}
	i.echo("지원 명령어 목록:\n" + strings.Join(templates, "\n"))
}

// handleExit is the only self-terminating statement.
func (i *Interpreter) handleExit(_ []string) {
	i.echo("인터프리터 종료")
	i.halted = true
}

const helpText = `
명령어 목록:
- 노무현이 왔습니다 "메시지" 북딱 : 메시지 출력.
- 동네 힘센 사람 변수명 북딱 : 변수 선언.
- 변수명 마 매끼나라 고마 표현식 북딱 : 변수에 표현식 평가 결과 할당.
- 응디 변수명 북딱 : 변수 출력.
- 방독면 챙기십쇼 "파일경로" 북딱 : 파일 내용 출력.
- 지금까지 뭐했노 "프롬프트" 북딱 : 사용자 입력 후 출력.
- 변수 목록 북딱 : 현재 스코프의 변수 목록 출력.
- 변수 삭제 변수명 북딱 : 변수 삭제.
- 만약 (조건식) 북딱 ... [아니면 북딱 ...] 끝 만약 북딱 : 조건문.
- 반복 (조건식) 북딱 ... 끝 반복 북딱 : while 반복문.
- 반복문 변수 in 표현식 북딱 ... 끝 반복문 북딱 : for 반복문.
- 브레이크 북딱 : 반복문 중 break.
- 넘어가 북딱 : 반복문 중 continue.
- 흔들어라 함수명(매개변수들) 북딱 ... 끝 흔들어라 북딱 : 함수 정의.
- 함수 호출 함수명(인자들) 북딱 : 함수 호출.
- 돌아가 [표현식] 북딱 : 함수에서 반환.
- 상태 북딱 : 현재 스코프(변수 상태) 출력.
- 버전 북딱 : 인터프리터 버전 출력.
-------------------------------
[추가 기능]
- 파일에 쓰기 "파일명", "내용" 북딱
- 파일에 추가하기 "파일명", "내용" 북딱
- 파일 삭제 "파일명" 북딱
- 파일 존재 확인 "파일명" 북딱
- 디렉터리 목록 북딱
- 응디 현재 시간 북딱
- 응디 현재 날짜 북딱
- 응디 요청 보내기 "URL" 북딱
- JSON 변환 "문자열" 북딱
- JSON 문자열화 변수명 북딱
- 리스트 추가 변수명, 값 북딱
- 리스트 삭제 변수명, 인덱스 북딱
- 리스트 정렬 변수명 북딱
- 대문자로 변환 변수명 북딱
- 소문자로 변환 변수명 북딱
- 랜덤 숫자 (최소, 최대) 북딱
- 랜덤 리스트 섞기 리스트명 북딱
- 환경 변수 출력 "변수명" 북딱
- 환경 변수 설정 "변수명", "값" 북딱
- 거듭제곱 (밑, 지수) 북딱
- 제곱근 (값) 북딱
- 로그 (값, 밑) 북딱
- 변수 저장 "파일명" 북딱
- 변수 불러오기 "파일명" 북딱
- 종료 북딱
- 프롬프트 설정 "새 프롬프트" 북딱
- 도움말 "명령어" 북딱 : 지원 명령어 목록 출력.
-------------------------------
[시스템 명령어]
- 화면 지우기 북딱 : 콘솔 화면 지우기.
- 현재 경로 출력 북딱 : 현재 작업 디렉터리 출력.
- 작업 디렉터리 변경 "경로" 북딱 : 작업 디렉터리 변경.
`
