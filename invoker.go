package retry

import (
	"fmt"
	"reflect"
	"time"
)

func (this executor) Invoke(target any, method string, retries int, interval time.Duration, args ...any) (any, error) {
	callable, arguments, err := resolve(target, method, args)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < retries; attempt++ {
		result, err := this.call(callable, arguments)
		if err == nil {
			this.logRecovery(attempt)
			return result, nil
		}

		this.monitor.AttemptFailed(attempt+1, err)
		this.logFailure(attempt+1, err)

		time.Sleep(interval)
	}

	this.monitor.RetriesExhausted(retries)
	this.logger.Printf("[WARN] Method [%s] still failing after [%d] attempt(s).", method, retries)
	return nil, ExhaustedError{Attempts: retries}
}
func (this executor) call(callable reflect.Value, arguments []reflect.Value) (result any, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			result, err = nil, captured(nil, recovered)
		}
	}()
	return splitReturns(callable.Call(arguments))
}

func resolve(target any, method string, args []any) (reflect.Value, []reflect.Value, error) {
	if target == nil {
		return reflect.Value{}, nil, ErrNilTarget
	}
	if len(method) == 0 {
		return reflect.Value{}, nil, ErrUnknownMethod
	}

	callable := reflect.ValueOf(target).MethodByName(method)
	if !callable.IsValid() {
		return reflect.Value{}, nil, fmt.Errorf("%w: [%s]", ErrUnknownMethod, method)
	}

	arguments, err := buildArguments(callable.Type(), args)
	if err != nil {
		return reflect.Value{}, nil, err
	}

	return callable, arguments, nil
}
func buildArguments(signature reflect.Type, args []any) ([]reflect.Value, error) {
	required := signature.NumIn()
	if signature.IsVariadic() {
		required--
		if len(args) < required {
			return nil, fmt.Errorf("%w: expected at least [%d] argument(s), received [%d]", ErrArgumentMismatch, required, len(args))
		}
	} else if len(args) != required {
		return nil, fmt.Errorf("%w: expected [%d] argument(s), received [%d]", ErrArgumentMismatch, required, len(args))
	}

	arguments := make([]reflect.Value, 0, len(args))
	for index, arg := range args {
		expected := parameterType(signature, index, required)
		value, err := buildArgument(arg, expected, index)
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, value)
	}

	return arguments, nil
}
func parameterType(signature reflect.Type, index, required int) reflect.Type {
	if index >= required && signature.IsVariadic() {
		return signature.In(signature.NumIn() - 1).Elem()
	}
	return signature.In(index)
}
func buildArgument(arg any, expected reflect.Type, index int) (reflect.Value, error) {
	if arg == nil {
		switch expected.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
			return reflect.Zero(expected), nil
		default:
			return reflect.Value{}, fmt.Errorf("%w: argument [%d] must not be nil", ErrArgumentMismatch, index)
		}
	}

	value := reflect.ValueOf(arg)
	if !value.Type().AssignableTo(expected) {
		return reflect.Value{}, fmt.Errorf("%w: argument [%d] of type [%s] is not assignable to [%s]", ErrArgumentMismatch, index, value.Type(), expected)
	}

	return value, nil
}

func splitReturns(values []reflect.Value) (any, error) {
	if len(values) == 0 {
		return nil, nil
	}

	last := values[len(values)-1]
	if last.Type() == errorType {
		if !last.IsNil() {
			return nil, last.Interface().(error)
		}
		values = values[:len(values)-1]
	}

	if len(values) == 0 {
		return nil, nil
	}
	return values[0].Interface(), nil
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()
