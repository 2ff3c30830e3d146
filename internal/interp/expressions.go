package interp

import (
	"github.com/cbowman/loxi/internal/ast"
	"github.com/cbowman/loxi/internal/errs"
	"github.com/cbowman/loxi/internal/token"
)

func (i *Interpreter) evaluate(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalValue(e.Value), nil

	case *ast.Grouping:
		return i.evaluate(e.Expression)

	case *ast.Unary:
		return i.evalUnary(e)

	case *ast.Binary:
		return i.evalBinary(e)

	case *ast.Logical:
		return i.evalLogical(e)

	case *ast.Variable:
		return i.lookupVariable(e.Name, e)

	case *ast.Assign:
		value, err := i.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		if err := i.assignVariable(e.Name, e, value); err != nil {
			return nil, err
		}
		return value, nil

	case *ast.Call:
		return i.evalCall(e)

	case *ast.Get:
		return i.evalGet(e)

	case *ast.Set:
		return i.evalSet(e)

	case *ast.This:
		return i.lookupVariable(e.Keyword, e)

	case *ast.Super:
		return i.evalSuper(e)

	default:
		return nil, i.runtimeErr(expr.Pos(), errs.CodeUnreachableCode, "unreachable expression kind")
	}
}

func literalValue(v any) Value {
	switch x := v.(type) {
	case nil:
		return Nil
	case bool:
		return BooleanValue(x)
	case float64:
		return NumberValue(x)
	case string:
		return StringValue(x)
	default:
		return Nil
	}
}

// lookupVariable implements the variable access protocol:
// a recorded depth walks exactly that many enclosing frames; absence
// from the depth map means "look in the global frame".
func (i *Interpreter) lookupVariable(name token.Token, expr ast.Expr) (Value, error) {
	if depth, ok := i.depths[expr]; ok {
		return i.environment.GetAt(depth, name.Lexeme), nil
	}
	if v, ok := i.globals.Get(name.Lexeme); ok {
		return v, nil
	}
	return nil, i.runtimeErrf(name.Pos, errs.CodeUnknownVariable, "undefined variable '%s'", name.Lexeme)
}

func (i *Interpreter) assignVariable(name token.Token, expr ast.Expr, value Value) error {
	if depth, ok := i.depths[expr]; ok {
		i.environment.AssignAt(depth, name.Lexeme, value)
		return nil
	}
	if i.globals.Assign(name.Lexeme, value) {
		return nil
	}
	return i.runtimeErrf(name.Pos, errs.CodeUnknownVariable, "undefined variable '%s'", name.Lexeme)
}

func (i *Interpreter) evalUnary(e *ast.Unary) (Value, error) {
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Operator.Kind {
	case token.MINUS:
		n, ok := right.(NumberValue)
		if !ok {
			return nil, i.runtimeErr(e.Operator.Pos, errs.CodeExpectedNumberOperand, "operand must be a number")
		}
		return -n, nil
	case token.BANG:
		return BooleanValue(!IsTruthy(right)), nil
	default:
		return nil, i.runtimeErr(e.Operator.Pos, errs.CodeUnreachableCode, "unreachable unary operator")
	}
}

func (i *Interpreter) evalLogical(e *ast.Logical) (Value, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	truthy := IsTruthy(left)
	if e.Operator.Kind == token.OR {
		if truthy {
			return left, nil
		}
	} else { // AND
		if !truthy {
			return left, nil
		}
	}
	return i.evaluate(e.Right)
}

// evalBinary implements arithmetic, comparison and equality. Numeric
// operators require both operands to be Number; `+` additionally accepts
// two Strings for concatenation; division is plain IEEE float division
// (no special-cased divide-by-zero error); `==`/`!=` use structural
// equality with no implicit conversion.
func (i *Interpreter) evalBinary(e *ast.Binary) (Value, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Kind {
	case token.MINUS, token.SLASH, token.STAR,
		token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL:
		ln, lok := left.(NumberValue)
		rn, rok := right.(NumberValue)
		if !lok || !rok {
			return nil, i.runtimeErr(e.Operator.Pos, errs.CodeExpectedNumberOperands, "operands must be numbers")
		}
		switch e.Operator.Kind {
		case token.MINUS:
			return ln - rn, nil
		case token.SLASH:
			return ln / rn, nil
		case token.STAR:
			return ln * rn, nil
		case token.GREATER:
			return BooleanValue(ln > rn), nil
		case token.GREATER_EQUAL:
			return BooleanValue(ln >= rn), nil
		case token.LESS:
			return BooleanValue(ln < rn), nil
		default: // LESS_EQUAL
			return BooleanValue(ln <= rn), nil
		}

	case token.PLUS:
		if ln, ok := left.(NumberValue); ok {
			if rn, ok := right.(NumberValue); ok {
				return ln + rn, nil
			}
		}
		if ls, ok := left.(StringValue); ok {
			if rs, ok := right.(StringValue); ok {
				return ls + rs, nil
			}
		}
		return nil, i.runtimeErr(e.Operator.Pos, errs.CodeExpectedAddableOperands,
			"operands must be two numbers or two strings")

	case token.EQUAL_EQUAL:
		return BooleanValue(Equal(left, right)), nil
	case token.BANG_EQUAL:
		return BooleanValue(!Equal(left, right)), nil

	default:
		return nil, i.runtimeErr(e.Operator.Pos, errs.CodeUnreachableCode, "unreachable binary operator")
	}
}

// evalCall evaluates the callee and arguments left-to-right, then invokes
// the callable.
func (i *Interpreter) evalCall(e *ast.Call) (Value, error) {
	callee, err := i.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(e.Args))
	for idx, a := range e.Args {
		v, err := i.evaluate(a)
		if err != nil {
			return nil, err
		}
		args[idx] = v
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, i.runtimeErr(e.Paren.Pos, errs.CodeInvalidCallObjectType, "can only call functions and classes")
	}
	if len(args) != fn.Arity() {
		return nil, i.runtimeErrf(e.Paren.Pos, errs.CodeInvalidArgsCount,
			"expected %d arguments but got %d", fn.Arity(), len(args))
	}
	return fn.Call(i, args)
}

func (i *Interpreter) evalGet(e *ast.Get) (Value, error) {
	obj, err := i.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*Instance)
	if !ok {
		return nil, i.runtimeErr(e.Name.Pos, errs.CodeInvalidCallObjectType, "only instances have properties")
	}
	v, ok := instance.Get(e.Name.Lexeme)
	if !ok {
		return nil, i.runtimeErrf(e.Name.Pos, errs.CodeUndefinedProperty, "undefined property '%s'", e.Name.Lexeme)
	}
	return v, nil
}

func (i *Interpreter) evalSet(e *ast.Set) (Value, error) {
	obj, err := i.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*Instance)
	if !ok {
		return nil, i.runtimeErr(e.Name.Pos, errs.CodeInvalidCallObjectType, "only instances have fields")
	}
	value, err := i.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	instance.Set(e.Name.Lexeme, value)
	return value, nil
}

// evalSuper looks up `super` at its resolved depth to find the
// superclass, finds `this` one frame closer (an invariant the resolver's
// scope construction guarantees), then binds the method on the
// superclass chain to that instance.
func (i *Interpreter) evalSuper(e *ast.Super) (Value, error) {
	depth := i.depths[e] // always present: resolver rejects `super` outside a subclass
	superVal := i.environment.GetAt(depth, "super")
	super, ok := superVal.(*Class)
	if !ok {
		return nil, i.runtimeErr(e.Keyword.Pos, errs.CodeUnreachableCode, "super is not a class")
	}
	thisVal := i.environment.GetAt(depth-1, "this")
	instance, ok := thisVal.(*Instance)
	if !ok {
		return nil, i.runtimeErr(e.Keyword.Pos, errs.CodeUnreachableCode, "this is not an instance")
	}
	method := super.FindMethod(e.Method.Lexeme)
	if method == nil {
		return nil, i.runtimeErrf(e.Method.Pos, errs.CodeUndefinedProperty, "undefined property '%s'", e.Method.Lexeme)
	}
	return method.Bind(instance), nil
}
