package interp

import (
	"time"

	"github.com/cbowman/loxi/internal/errs"
	"github.com/cbowman/loxi/internal/token"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// registerBuiltins seeds the global environment with the language's
// native callables: a clock for timing scripts, and case-folding helpers
// for string manipulation.
func registerBuiltins(globals *Environment) {
	globals.Define("clock", &NativeFunction{
		Name:   "clock",
		ArityN: 0,
		Fn: func(i *Interpreter, args []Value) (Value, error) {
			return NumberValue(float64(time.Now().UnixNano()) / 1e9), nil
		},
	})

	upperCaser := cases.Upper(language.Und)
	globals.Define("upper", &NativeFunction{
		Name:   "upper",
		ArityN: 1,
		Fn: func(i *Interpreter, args []Value) (Value, error) {
			s, ok := args[0].(StringValue)
			if !ok {
				return nil, errs.New(errs.CategoryRuntime, errs.CodeNativeArgumentType, token.Position{},
					"upper() requires a string argument")
			}
			return StringValue(upperCaser.String(string(s))), nil
		},
	})

	lowerCaser := cases.Lower(language.Und)
	globals.Define("lower", &NativeFunction{
		Name:   "lower",
		ArityN: 1,
		Fn: func(i *Interpreter, args []Value) (Value, error) {
			s, ok := args[0].(StringValue)
			if !ok {
				return nil, errs.New(errs.CategoryRuntime, errs.CodeNativeArgumentType, token.Position{},
					"lower() requires a string argument")
			}
			return StringValue(lowerCaser.String(string(s))), nil
		},
	})
}
