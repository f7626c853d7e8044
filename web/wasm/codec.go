//go:build js && wasm

package main

import (
	"encoding/json"
	"errors"
	"syscall/js"
)

var errMissingArgs = errors.New("missing arguments")

func stringArg(args []js.Value, i int) string {
	if i >= len(args) {
		return ""
	}
	return args[i].String()
}

// decodeArg unmarshals args[i], which may be a JSON string or a plain
// object, into v.
func decodeArg(args []js.Value, i int, v any) error {
	if i >= len(args) {
		return errMissingArgs
	}
	raw := args[i]
	if raw.Type() != js.TypeString {
		raw = js.Global().Get("JSON").Call("stringify", raw)
	}
	return json.Unmarshal([]byte(raw.String()), v)
}

func encode(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		return fail(err)
	}
	return string(b)
}

func fail(err error) any {
	b, _ := json.Marshal(map[string]string{"error": err.Error()})
	return string(b)
}

func done(err error) any {
	if err != nil {
		return fail(err)
	}
	return js.Null()
}

func result(v any, err error) any {
	if err != nil {
		return fail(err)
	}
	return encode(v)
}
