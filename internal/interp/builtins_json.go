package interp

import (
	"encoding/json"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/maruel/natural"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	nerr "github.com/nohlang/go-noh/internal/errors"
)

// unquotedKeyPattern matches a bare identifier key after '{' or ',' so the
// normalisation pass can quote it. \p{L} keeps Hangul keys working.
var unquotedKeyPattern = regexp.MustCompile(`([{,]\s*)([\p{L}\p{N}_]+)(\s*:)`)

// normalizeJSON repairs the two tolerated deviations from strict JSON:
// unquoted identifier keys gain double quotes, and single quotes become
// double quotes. It runs only after a strict parse has failed.
func normalizeJSON(s string) string {
	fixed := unquotedKeyPattern.ReplaceAllString(strings.TrimSpace(s), `$1"$2"$3`)
	fixed = strings.ReplaceAll(fixed, "'", `"`)
	return strings.TrimSpace(fixed)
}

// fromJSON converts a parsed JSON result into a runtime value.
func fromJSON(res gjson.Result) Value {
	switch {
	case res.Type == gjson.String:
		return &StringValue{Value: res.Str}
	case res.Type == gjson.Number:
		if !strings.ContainsAny(res.Raw, ".eE") {
			return &IntegerValue{Value: res.Int()}
		}
		return &FloatValue{Value: res.Num}
	case res.Type == gjson.True:
		return &BooleanValue{Value: true}
	case res.Type == gjson.False:
		return &BooleanValue{Value: false}
	case res.IsArray():
		list := &ListValue{}
		res.ForEach(func(_, item gjson.Result) bool {
			list.Elements = append(list.Elements, fromJSON(item))
			return true
		})
		return list
	case res.IsObject():
		m := &MapValue{}
		res.ForEach(func(key, item gjson.Result) bool {
			m.Set(&StringValue{Value: key.Str}, fromJSON(item))
			return true
		})
		return m
	default:
		return &NullValue{}
	}
}

// handleJSONLoad parses a JSON literal, tolerating single quotes and unquoted
// identifier keys via the normalisation pass, and prints the parsed object.
func (i *Interpreter) handleJSONLoad(groups []string) {
	jsonStr := strings.TrimSpace(groups[1])
	if strings.HasPrefix(jsonStr, `"`) && strings.HasSuffix(jsonStr, `"`) && len(jsonStr) >= 2 {
		jsonStr = strings.TrimSpace(jsonStr[1 : len(jsonStr)-1])
	}
	if gjson.Valid(jsonStr) {
		i.echof("JSON 객체: %s", fromJSON(gjson.Parse(jsonStr)))
		return
	}
	fixed := normalizeJSON(jsonStr)
	if gjson.Valid(fixed) {
		i.echof("JSON 객체: %s", fromJSON(gjson.Parse(fixed)))
		return
	}
	i.reportErr(nerr.New(nerr.IOError, "JSON 변환 실패 - %s", jsonStr))
}

// handleJSONDump serialises a bound value to JSON. Values with no JSON form
// (functions, builtins) fall back to their display string.
func (i *Interpreter) handleJSONDump(groups []string) {
	name := groups[1]
	v, ok := i.scopes.Lookup(name)
	if !ok {
		i.reportErr(nerr.New(nerr.NameError, "변수 %q 가 선언되지 않음", name))
		return
	}
	encoded, err := json.Marshal(ToNative(v))
	if err != nil {
		i.reportErr(nerr.New(nerr.IOError, "JSON 문자열화 실패 - %s", err))
		return
	}
	i.echof("JSON 문자열: %s", encoded)
}

// escapePath escapes the characters gjson/sjson paths treat specially so a
// variable name always addresses a single top-level key.
func escapePath(name string) string {
	replacer := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`)
	return replacer.Replace(name)
}

// handleSaveVars dumps every user-frame binding (all frames above builtins)
// to a JSON file, innermost bindings winning, written atomically.
func (i *Interpreter) handleSaveVars(groups []string) {
	filename := groups[1]
	merged := map[string]Value{}
	for _, frame := range i.scopes.Frames()[1:] {
		frame.Range(func(name string, v Value) bool {
			merged[name] = v
			return true
		})
	}
	names := make([]string, 0, len(merged))
	for name := range merged {
		names = append(names, name)
	}
	sort.Slice(names, func(a, b int) bool { return natural.Less(names[a], names[b]) })

	doc := "{}"
	for _, name := range names {
		var err error
		doc, err = sjson.Set(doc, escapePath(name), ToNative(merged[name]))
		if err != nil {
			i.reportErr(nerr.New(nerr.IOError, "변수 저장 실패 - %s", err))
			return
		}
	}
	if err := renameio.WriteFile(filename, pretty.Pretty([]byte(doc)), 0o644); err != nil {
		i.reportIOErr(err, "변수 저장 실패")
		return
	}
	i.echof("변수 저장 완료: %s", filename)
}

// handleLoadVars reads a JSON object file and merges its bindings into the
// current frame.
func (i *Interpreter) handleLoadVars(groups []string) {
	filename := groups[1]
	content, err := os.ReadFile(filename)
	if err != nil {
		i.reportIOErr(err, "변수 불러오기 실패")
		return
	}
	parsed := gjson.ParseBytes(content)
	if !parsed.IsObject() {
		i.reportErr(nerr.New(nerr.IOError, "변수 불러오기 실패 - JSON 객체가 아님: %s", filename))
		return
	}
	current := i.scopes.Current()
	parsed.ForEach(func(key, item gjson.Result) bool {
		current.Set(key.Str, fromJSON(item))
		return true
	})
	i.echof("변수 불러오기 완료: %s", filename)
}
