package cmd

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/nohlang/go-noh/pkg/noh"
)

// exitWords end the REPL when typed on their own.
var exitWords = map[string]bool{
	"종료": true,
	"exit": true,
	"quit": true,
}

// runREPL reads lines from stdin and feeds each to the interpreter. The loop
// ends on an exit word, end of input, an interrupt, or the exit statement.
func runREPL(engine *noh.Engine) error {
	fmt.Println("대화형 모드입니다. '종료', 'exit' 또는 'quit'을 입력하면 종료합니다.")

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	lines := make(chan string)
	scanner := bufio.NewScanner(os.Stdin)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		fmt.Print(engine.Prompt())
		select {
		case <-interrupt:
			fmt.Println("\n종료합니다.")
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Println()
				return nil
			}
			if exitWords[strings.TrimSpace(line)] {
				return nil
			}
			engine.Run(line)
			if engine.Halted() {
				return nil
			}
		}
	}
}
