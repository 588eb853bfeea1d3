package interp

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/google/shlex"
	"github.com/pkg/errors"

	nerr "github.com/nohlang/go-noh/internal/errors"
)

// reportIOErr wraps a cause with context and reports it as an IOError.
func (i *Interpreter) reportIOErr(cause error, format string, args ...any) {
	wrapped := errors.Wrapf(cause, format, args...)
	i.reportErr(nerr.New(nerr.IOError, "%s", wrapped))
}

// handleReadFile prints the contents of a file.
func (i *Interpreter) handleReadFile(groups []string) {
	path := groups[1]
	content, err := os.ReadFile(path)
	if err != nil {
		i.reportIOErr(err, "파일을 읽을 수 없습니다 - %s", path)
		return
	}
	i.echo(strings.TrimSpace(string(content)))
}

// handleInput reads one line of user input, preferring the scripted-input
// FIFO, and echoes it back.
func (i *Interpreter) handleInput(groups []string) {
	line, err := i.getUserInput(groups[1] + ": ")
	if err != nil {
		i.reportIOErr(err, "입력 읽기 실패")
		return
	}
	i.echo(line)
}

func (i *Interpreter) handleFileWrite(groups []string) {
	filename, content := groups[1], groups[2]
	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		i.reportIOErr(err, "파일 쓰기 실패")
		return
	}
	i.echof("파일 %q에 쓰기 완료", filename)
}

func (i *Interpreter) handleFileAppend(groups []string) {
	filename, content := groups[1], groups[2]
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		i.reportIOErr(err, "파일 추가 쓰기 실패")
		return
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		i.reportIOErr(err, "파일 추가 쓰기 실패")
		return
	}
	i.echof("파일 %q에 추가 쓰기 완료", filename)
}

func (i *Interpreter) handleFileDelete(groups []string) {
	filename := groups[1]
	if err := os.Remove(filename); err != nil {
		i.reportIOErr(err, "파일 삭제 실패")
		return
	}
	i.echof("파일 %q 삭제 완료", filename)
}

func (i *Interpreter) handleFileExists(groups []string) {
	filename := groups[1]
	_, err := os.Stat(filename)
	exists := err == nil
	i.echof("파일 %q 존재 여부: %s", filename, boolWord(exists))
}

func boolWord(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func (i *Interpreter) handleListDirectory(_ []string) {
	entries, err := os.ReadDir(".")
	if err != nil {
		i.reportIOErr(err, "디렉터리 목록 출력 실패")
		return
	}
	names := make([]string, len(entries))
	for idx, entry := range entries {
		names[idx] = entry.Name()
	}
	i.echo("디렉터리 목록: " + strings.Join(names, ", "))
}

// handleSystemCommand splits the command line into shell words and spawns the
// process, blocking until it exits.
func (i *Interpreter) handleSystemCommand(groups []string) {
	words, err := shlex.Split(groups[1])
	if err != nil || len(words) == 0 {
		i.reportErr(nerr.New(nerr.IOError, "시스템 명령 파싱 실패 - %s", groups[1]))
		return
	}
	cmd := exec.Command(words[0], words[1:]...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		i.reportIOErr(err, "시스템 명령 실행 실패")
		return
	}
	i.echof("시스템 명령 실행 결과: %s", strings.TrimSpace(string(output)))
}

// handleClearScreen clears the console via the platform's clear command.
func (i *Interpreter) handleClearScreen(_ []string) {
	name := "clear"
	if runtime.GOOS == "windows" {
		name = "cls"
	}
	cmd := exec.Command(name)
	cmd.Stdout = i.promptOut
	if err := cmd.Run(); err != nil {
		i.reportIOErr(err, "화면 지우기 실패")
		return
	}
	i.echo("화면 지우기 완료")
}

func (i *Interpreter) handleCwdPrint(_ []string) {
	cwd, err := os.Getwd()
	if err != nil {
		i.reportIOErr(err, "현재 경로 출력 실패")
		return
	}
	i.echof("현재 작업 디렉터리: %s", cwd)
}

func (i *Interpreter) handleChangeDirectory(groups []string) {
	if err := os.Chdir(groups[1]); err != nil {
		i.reportIOErr(err, "작업 디렉터리 변경 실패")
		return
	}
	cwd, _ := os.Getwd()
	i.echof("작업 디렉터리 변경 완료: %s", cwd)
}

// handleEnvPrint prints a process environment variable; an unset variable
// prints as None.
func (i *Interpreter) handleEnvPrint(groups []string) {
	name := groups[1]
	value, ok := os.LookupEnv(name)
	if !ok {
		i.echof("환경 변수 %q = None", name)
		return
	}
	i.echof("환경 변수 %q = %s", name, value)
}

func (i *Interpreter) handleEnvSet(groups []string) {
	name, value := groups[1], groups[2]
	if err := os.Setenv(name, value); err != nil {
		i.reportIOErr(err, "환경 변수 설정 실패")
		return
	}
	i.echo(fmt.Sprintf("환경 변수 %q를 %q로 설정함", name, value))
}
