package conduit_test

import (
	"errors"
	"fmt"

	"github.com/baxromumarov/conduit"
)

func ExampleChannel() {
	ch, _ := conduit.New[string](2)

	go func() {
		_ = ch.Send("hello")
		_ = ch.Send("world")
		_ = ch.Close()
	}()

	for {
		v, err := ch.Recv()
		if err != nil {
			break // drained and closed
		}
		fmt.Println(v)
	}
	// Output:
	// hello
	// world
}

func ExampleChannel_TrySend() {
	ch, _ := conduit.New[int](1)

	fmt.Println(ch.TrySend(1))
	fmt.Println(errors.Is(ch.TrySend(2), conduit.ErrFull))
	// Output:
	// <nil>
	// true
}

func ExampleChannel_Close() {
	ch, _ := conduit.New[int](4)
	_ = ch.Send(42)
	_ = ch.Close()

	// Sends are rejected after close, but buffered items still drain.
	fmt.Println(errors.Is(ch.Send(7), conduit.ErrClosed))
	v, _ := ch.Recv()
	fmt.Println(v)
	_, err := ch.Recv()
	fmt.Println(errors.Is(err, conduit.ErrClosed))
	// Output:
	// true
	// 42
	// true
}

func ExampleSelect() {
	a, _ := conduit.New[string](1)
	b, _ := conduit.New[string](1)
	_ = b.Send("from b")

	cases := []conduit.Case[string]{
		{Chan: a, Op: conduit.OpRecv},
		{Chan: b, Op: conduit.OpRecv},
	}
	i, err := conduit.Select(cases)
	if err == nil {
		fmt.Println(i, cases[i].Value)
	}
	// Output: 1 from b
}

func ExamplePool() {
	p := conduit.NewPool(2)

	for i := 0; i < 3; i++ {
		i := i
		_ = p.Submit(func() error {
			if i == 1 {
				return fmt.Errorf("task %d failed", i)
			}
			return nil
		})
	}

	err := p.Close()
	fmt.Println(err)
	// Output: task 1 failed
}
