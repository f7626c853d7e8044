//go:build js && wasm

// Command wasm exposes the signal workbench to the browser as the global
// AlgoSignals object. Structured results are returned as JSON strings and
// failures as {"error": "..."}.
package main

import (
	"syscall/js"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-signals/internal/logging"
	"github.com/cwbudde/algo-signals/internal/webdemo"
)

var (
	engine *webdemo.Engine
	funcs  []js.Func
)

type consoleWriter struct{}

func (consoleWriter) Write(p []byte) (int, error) {
	js.Global().Get("console").Call("log", string(p))
	return len(p), nil
}

func main() {
	api := js.Global().Get("Object").New()
	api.Set("init", export(func(args []js.Value) any {
		level := "warn"
		if len(args) > 0 && args[0].Type() == js.TypeString {
			level = args[0].String()
		}
		logger := logging.NewWriter(consoleWriter{}, level)
		engine = webdemo.NewEngine(logger)
		logger.Info("workbench ready", zap.String("level", level))
		return js.Null()
	}))

	api.Set("addSignal", export(func(args []js.Value) any {
		var p webdemo.SignalParams
		if err := decodeArg(args, 0, &p); err != nil {
			return fail(err)
		}
		return result(engine.AddSignal(p))
	}))

	api.Set("updateSignal", export(func(args []js.Value) any {
		var p webdemo.SignalParams
		if err := decodeArg(args, 1, &p); err != nil {
			return fail(err)
		}
		return done(engine.UpdateSignal(args[0].String(), p))
	}))

	api.Set("removeSignal", export(func(args []js.Value) any {
		return done(engine.RemoveSignal(stringArg(args, 0)))
	}))

	api.Set("select", export(func(args []js.Value) any {
		return done(engine.Select(stringArg(args, 0)))
	}))

	api.Set("undo", export(func([]js.Value) any { return engine.Undo() }))
	api.Set("redo", export(func([]js.Value) any { return engine.Redo() }))
	api.Set("selected", export(func([]js.Value) any { return engine.SelectedID() }))

	api.Set("signals", export(func([]js.Value) any {
		return encode(engine.Signals())
	}))

	api.Set("traces", export(func(args []js.Value) any {
		ids := make([]string, 0, len(args))
		for _, a := range args {
			ids = append(ids, a.String())
		}
		return result(engine.Traces(ids...))
	}))

	api.Set("analyze", export(func(args []js.Value) any {
		return result(engine.Analyze(stringArg(args, 0)))
	}))

	api.Set("spectrum", export(func(args []js.Value) any {
		return result(engine.Spectrum(stringArg(args, 0), stringArg(args, 1)))
	}))

	api.Set("combine", export(func(args []js.Value) any {
		return result(engine.Combine(stringArg(args, 0), stringArg(args, 1), stringArg(args, 2)))
	}))

	api.Set("sampled", export(func(args []js.Value) any {
		return result(engine.Sampled(stringArg(args, 0), stringArg(args, 1), stringArg(args, 2)))
	}))

	api.Set("transform", export(func(args []js.Value) any {
		if len(args) < 3 {
			return fail(errMissingArgs)
		}
		return result(engine.Transform(args[0].String(), args[1].String(), args[2].Float()))
	}))

	api.Set("exportSignals", export(func([]js.Value) any {
		return result(engine.Export())
	}))

	api.Set("importSignals", export(func(args []js.Value) any {
		return done(engine.Import(stringArg(args, 0)))
	}))

	api.Set("statuses", export(func([]js.Value) any {
		st := engine.Statuses()
		out := make([]map[string]string, len(st))
		for i, s := range st {
			out[i] = map[string]string{"level": s.Level.String(), "message": s.Message}
		}
		return encode(out)
	}))

	js.Global().Set("AlgoSignals", api)
	select {}
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if engine == nil {
			engine = webdemo.NewEngine(nil)
		}
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}
