package interp

import (
	"regexp"
	"strings"

	nerr "github.com/nohlang/go-noh/internal/errors"
	"github.com/nohlang/go-noh/internal/lexer"
)

// processIf executes an if/else construct. The then and else bodies are
// collected by scanning forward with a nesting counter so only the sibling
// else and end-if at depth zero delimit this construct. The selected body
// runs in a fresh scope. Returns the index of the line after the end-if.
func (i *Interpreter) processIf(lines []string, index int) int {
	line := lexer.CleanLine(lines[index])
	match := patternIf.FindStringSubmatch(line)
	if match == nil {
		i.reportErr(nerr.New(nerr.SyntaxError, "만약 구문 파싱 실패"))
		return index + 1
	}
	condition, _ := i.evaluate(match[1])

	var thenBlock, elseBlock []string
	inElse := false
	nested := 0
	idx := index + 1
	for idx < len(lines) {
		curr := lexer.CleanLine(lines[idx])
		if patternIf.MatchString(curr) {
			nested++
		} else if patternEndIf.MatchString(curr) {
			if nested > 0 {
				nested--
			} else {
				break
			}
		} else if patternElse.MatchString(curr) && nested == 0 {
			inElse = true
			idx++
			continue
		}
		if inElse {
			elseBlock = append(elseBlock, curr)
		} else {
			thenBlock = append(thenBlock, curr)
		}
		idx++
	}

	i.scopes.Push()
	if Truthy(condition) {
		i.executeLines(thenBlock)
	} else {
		i.executeLines(elseBlock)
	}
	i.popScope()
	return idx + 1
}

// processWhile executes a while loop. The guard is re-evaluated before every
// iteration; each iteration runs the body in a fresh scope. Break exits the
// loop, continue restarts it, return propagates upward.
func (i *Interpreter) processWhile(lines []string, index int) int {
	line := lexer.CleanLine(lines[index])
	match := patternWhile.FindStringSubmatch(line)
	if match == nil {
		i.reportErr(nerr.New(nerr.SyntaxError, "반복 구문 파싱 실패"))
		return index + 1
	}
	condition := match[1]

	block, next := collectBlock(lines, index+1, patternWhile, patternEndWhile)

	for {
		guard, ok := i.evaluate(condition)
		if !ok || !Truthy(guard) {
			break
		}
		i.scopes.Push()
		i.executeLines(block)
		i.popScope()

		if i.continueSignal {
			i.continueSignal = false
			continue
		}
		if i.breakSignal {
			i.breakSignal = false
			break
		}
		if i.returnSignal || i.halted {
			break
		}
	}
	return next + 1
}

// processFor executes a for-in loop over the elements of an iterable value.
// The iteration variable is declared afresh in each iteration's scope.
func (i *Interpreter) processFor(lines []string, index int) int {
	line := lexer.CleanLine(lines[index])
	match := patternFor.FindStringSubmatch(line)
	if match == nil {
		i.reportErr(nerr.New(nerr.SyntaxError, "반복문 구문 파싱 실패"))
		return index + 1
	}
	iterVar := match[1]

	block, next := collectBlock(lines, index+1, patternFor, patternEndFor)

	iterable, ok := i.evaluate(match[2])
	if !ok {
		return next + 1
	}
	elements, ok := iterableElements(iterable)
	if !ok {
		i.reportErr(nerr.New(nerr.TypeError, "반복문 대상이 반복 가능하지 않음 (%s)", iterable.Type()))
		return next + 1
	}

	for _, element := range elements {
		i.scopes.Push()
		if err := i.scopes.Declare(iterVar); err != nil {
			i.reportErr(err)
		} else if err := i.scopes.Assign(iterVar, element); err != nil {
			i.reportErr(err)
		}
		i.executeLines(block)
		i.popScope()

		if i.continueSignal {
			i.continueSignal = false
			continue
		}
		if i.breakSignal {
			i.breakSignal = false
			break
		}
		if i.returnSignal || i.halted {
			break
		}
	}
	return next + 1
}

// iterableElements returns the element sequence of an iterable value. Lists
// and tuples iterate their elements, strings their characters, maps their
// keys.
func iterableElements(v Value) ([]Value, bool) {
	switch val := v.(type) {
	case *ListValue:
		return val.Elements, true
	case *TupleValue:
		return val.Elements, true
	case *StringValue:
		runes := []rune(val.Value)
		elements := make([]Value, len(runes))
		for i, r := range runes {
			elements[i] = &StringValue{Value: string(r)}
		}
		return elements, true
	case *MapValue:
		elements := make([]Value, len(val.Entries))
		for i, e := range val.Entries {
			elements[i] = e.Key
		}
		return elements, true
	}
	return nil, false
}

// processFuncDef builds a function value from a definition block. The
// closure is a deep snapshot of the scope stack taken before the function's
// own name is declared, so a function is not captured by its own closure.
func (i *Interpreter) processFuncDef(lines []string, index int) int {
	line := lexer.CleanLine(lines[index])
	match := patternFuncDef.FindStringSubmatch(line)
	if match == nil {
		i.reportErr(nerr.New(nerr.SyntaxError, "함수 정의 구문 파싱 실패"))
		return index + 1
	}
	name := match[1]
	params := splitNames(match[2])

	block, next := collectBlock(lines, index+1, patternFuncDef, patternEndFunc)

	fn := &FunctionValue{
		Params:  params,
		Body:    block,
		Closure: i.scopes.Snapshot(),
	}
	if err := i.scopes.Declare(name); err != nil {
		i.reportErr(err)
		return next + 1
	}
	if err := i.scopes.Assign(name, fn); err != nil {
		i.reportErr(err)
	}
	return next + 1
}

// processFuncCall evaluates argument expressions left to right, resolves the
// callee, and invokes the call protocol.
func (i *Interpreter) processFuncCall(line string) {
	match := patternFuncCall.FindStringSubmatch(lexer.CleanLine(line))
	if match == nil {
		i.reportErr(nerr.New(nerr.SyntaxError, "함수 호출 구문 파싱 실패"))
		return
	}
	name := match[1]
	args := make([]Value, 0)
	for _, argExpr := range splitNames(match[2]) {
		v, ok := i.evaluate(argExpr)
		if !ok {
			return
		}
		args = append(args, v)
	}
	callee, ok := i.scopes.Lookup(name)
	if !ok {
		i.reportErr(nerr.New(nerr.NameError, "변수 %q 가 선언되지 않음", name))
		return
	}
	fn, ok := callee.(*FunctionValue)
	if !ok {
		i.reportErr(nerr.New(nerr.TypeError, "%q 는 함수가 아님", name))
		return
	}
	fn.Call(i, args)
}

// processReturn evaluates the optional return expression and raises the
// return signal.
func (i *Interpreter) processReturn(line string) {
	match := patternReturn.FindStringSubmatch(lexer.CleanLine(line))
	if match == nil {
		i.reportErr(nerr.New(nerr.SyntaxError, "반환 구문 파싱 실패"))
		return
	}
	var ret Value = &NullValue{}
	if match[1] != "" {
		if v, ok := i.evaluate(match[1]); ok {
			ret = v
		}
	}
	i.returnSignal = true
	i.returnValue = ret
}

// collectBlock scans forward from start, collecting lines until the closer
// pattern at nesting depth zero. Nested opener/closer pairs of the same kind
// are tracked with a counter. Returns the block and the index of the closing
// line; a missing closer consumes the remainder of the input.
func collectBlock(lines []string, start int, opener, closer *regexp.Regexp) ([]string, int) {
	var block []string
	nested := 0
	idx := start
	for idx < len(lines) {
		curr := lexer.CleanLine(lines[idx])
		if opener.MatchString(curr) {
			nested++
		} else if closer.MatchString(curr) {
			if nested > 0 {
				nested--
			} else {
				break
			}
		}
		block = append(block, curr)
		idx++
	}
	return block, idx
}

// popScope pops the current frame, reporting the error instead of panicking
// if the stack is already at its floor.
func (i *Interpreter) popScope() {
	if err := i.scopes.Pop(); err != nil {
		i.reportErr(err)
	}
}

// splitNames splits a comma-separated group into trimmed non-empty parts.
// Commas nested inside brackets or string literals do not split, so list and
// map literals work as call arguments.
func splitNames(s string) []string {
	parts := make([]string, 0)
	depth := 0
	var quote rune
	var sb strings.Builder
	flush := func() {
		part := strings.TrimSpace(sb.String())
		if part != "" {
			parts = append(parts, part)
		}
		sb.Reset()
	}
	for _, ch := range s {
		if quote != 0 {
			if ch == quote {
				quote = 0
			}
			sb.WriteRune(ch)
			continue
		}
		switch ch {
		case '\'', '"':
			quote = ch
			sb.WriteRune(ch)
		case '(', '[', '{':
			depth++
			sb.WriteRune(ch)
		case ')', ']', '}':
			depth--
			sb.WriteRune(ch)
		case ',':
			if depth == 0 {
				flush()
			} else {
				sb.WriteRune(ch)
			}
		default:
			sb.WriteRune(ch)
		}
	}
	flush()
	return parts
}
