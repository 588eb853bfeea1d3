package interp

// TestProgram is the built-in self-test exercised by the CLI's --test flag.
// It touches most statement families once; file reading, user input, HTTP,
// screen clearing, environment variables, the math statements, variable
// deletion, plain help and exit are not in it.
const TestProgram = `
노무현이 왔습니다 "테스트 시작" 북딱
동네 힘센 사람 x 북딱
x 마 매끼나라 고마 10 + 5 북딱
응디 x 북딱
만약 (x > 10) 북딱
  노무현이 왔습니다 "x는 10보다 큼" 북딱
아니면 북딱
  노무현이 왔습니다 "x는 10 이하" 북딱
끝 만약 북딱
반복 (x > 0) 북딱
  x 마 매끼나라 고마 x - 3 북딱
  응디 x 북딱
  만약 (x == 4) 북딱
    브레이크 북딱
  끝 만약 북딱
끝 반복 북딱
반복문 i in [1,2,3,4] 북딱
  응디 i 북딱
  넘어가 북딱
  노무현이 왔습니다 "이 문장은 실행되지 않아" 북딱
끝 반복문 북딱
흔들어라 add(a, b) 북딱
  a 마 매끼나라 고마 a + b 북딱
  돌아가 a 북딱
끝 흔들어라 북딱
함수 호출 add(7, 8) 북딱
변수 목록 북딱
상태 북딱
버전 북딱
파일에 쓰기 "test.txt", "파일 쓰기 테스트." 북딱
파일에 추가하기 "test.txt", " 추가 내용." 북딱
파일 삭제 "test.txt" 북딱
파일 존재 확인 "test.txt" 북딱
디렉터리 목록 북딱
현재 경로 출력 북딱
작업 디렉터리 변경 "." 북딱
응디 현재 시간 북딱
응디 현재 날짜 북딱
JSON 변환 "{'이름': '철수', '나이': 20}" 북딱
동네 힘센 사람 myList 북딱
myList 마 매끼나라 고마 [1,2,3] 북딱
리스트 추가 myList, 4 북딱
리스트 삭제 myList, 1 북딱
리스트 정렬 myList 북딱
JSON 문자열화 myList 북딱
동네 힘센 사람 myStr 북딱
myStr 마 매끼나라 고마 "hello world" 북딱
대문자로 변환 myStr 북딱
소문자로 변환 myStr 북딱
랜덤 숫자 (1, 100) 북딱
랜덤 리스트 섞기 myList 북딱
동네 힘센 사람 myDict 북딱
myDict 마 매끼나라 고마 {"a": 1} 북딱
딕셔너리 추가 myDict, "b", 2 북딱
딕셔너리 삭제 myDict, "a" 북딱
JSON 문자열화 myDict 북딱
변수 저장 "vars.json" 북딱
초기화 북딱
변수 불러오기 "vars.json" 북딱
내장함수 목록 북딱
프롬프트 설정 "NoH>" 북딱
도움말 "명령어" 북딱
시스템 실행 "echo 시스템 테스트" 북딱
`

// DefaultProgram runs when the CLI gets no script, no --repl, and stdin is
// not a terminal.
const DefaultProgram = `
노무현이 왔습니다 "안녕하세요!" 북딱
동네 힘센 사람 x 북딱
x 마 매끼나라 고마 42 북딱
응디 x 북딱
만약 (x > 40) 북딱
  노무현이 왔습니다 "x는 40 초과" 북딱
아니면 북딱
  노무현이 왔습니다 "x는 40 이하" 북딱
끝 만약 북딱
반복 (x > 0) 북딱
  x 마 매끼나라 고마 x - 10 북딱
  응디 x 북딱
끝 반복 북딱
반복문 i in [10, 20, 30] 북딱
  응디 i 북딱
끝 반복문 북딱
흔들어라 multiply(a, b) 북딱
  a 마 매끼나라 고마 a * b 북딱
  돌아가 a 북딱
끝 흔들어라 북딱
함수 호출 multiply(3, 5) 북딱
변수 목록 북딱
도움말 북딱
`
