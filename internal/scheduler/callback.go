package scheduler

import (
	"fmt"
	"reflect"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// bind checks that fn can be invoked with args and returns a closure that
// performs the call. The argument slice is captured as-is.
func bind(fn any, args []any) (func() error, error) {
	switch f := fn.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil callback", ErrNotCallable)
	case Callback:
		if f == nil {
			return nil, fmt.Errorf("%w: nil callback", ErrNotCallable)
		}
		return func() error { return f(args...) }, nil
	case func(...any) error:
		if f == nil {
			return nil, fmt.Errorf("%w: nil callback", ErrNotCallable)
		}
		return func() error { return f(args...) }, nil
	case func():
		if f != nil && len(args) == 0 {
			return func() error { f(); return nil }, nil
		}
	case func() error:
		if f != nil && len(args) == 0 {
			return f, nil
		}
	}
	return bindReflect(fn, args)
}

func bindReflect(fn any, args []any) (func() error, error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return nil, fmt.Errorf("%w: %T", ErrNotCallable, fn)
	}
	t := v.Type()

	numIn := t.NumIn()
	if t.IsVariadic() {
		if len(args) < numIn-1 {
			return nil, fmt.Errorf("%w: %T needs at least %d arguments, got %d", ErrNotCallable, fn, numIn-1, len(args))
		}
	} else if len(args) != numIn {
		return nil, fmt.Errorf("%w: %T needs %d arguments, got %d", ErrNotCallable, fn, numIn, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		var pt reflect.Type
		if t.IsVariadic() && i >= numIn-1 {
			pt = t.In(numIn - 1).Elem()
		} else {
			pt = t.In(i)
		}
		av, err := argValue(a, pt)
		if err != nil {
			return nil, fmt.Errorf("%w: %T argument %d: %v", ErrNotCallable, fn, i, err)
		}
		in[i] = av
	}

	returnsErr := t.NumOut() > 0 && t.Out(t.NumOut()-1) == errorType
	return func() error {
		out := v.Call(in)
		if !returnsErr {
			return nil
		}
		last := out[len(out)-1]
		if last.IsNil() {
			return nil
		}
		return last.Interface().(error)
	}, nil
}

func argValue(a any, pt reflect.Type) (reflect.Value, error) {
	if a == nil {
		switch pt.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
			return reflect.Zero(pt), nil
		}
		return reflect.Value{}, fmt.Errorf("nil is not assignable to %s", pt)
	}
	av := reflect.ValueOf(a)
	if !av.Type().AssignableTo(pt) {
		return reflect.Value{}, fmt.Errorf("%s is not assignable to %s", av.Type(), pt)
	}
	return av, nil
}
