package polyglot

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/b-macker/NAAb-sub013/internal/eval"
	"github.com/b-macker/NAAb-sub013/internal/value"
)

func TestRunGroupRunsEveryTaskConcurrently(t *testing.T) {
	d := New(fakeCache{}, 0)
	env := value.NewEnvironment()
	env.Define("x", value.Int{Value: 10})

	var ran atomic.Int32
	tasks := []eval.Task{
		{Reads: []string{"x"}, Exec: func(env *value.Environment) error {
			v, ok := env.Lookup("x")
			if !ok || v.(value.Int).Value != 10 {
				t.Error("expected the isolated env to see the snapshotted read")
			}
			ran.Add(1)
			return nil
		}},
		{Reads: nil, Exec: func(env *value.Environment) error {
			ran.Add(1)
			return nil
		}},
	}

	if err := d.RunGroup(context.Background(), env, tasks); err != nil {
		t.Fatalf("RunGroup: %v", err)
	}
	if ran.Load() != 2 {
		t.Errorf("ran = %d, want 2", ran.Load())
	}
}

func TestRunGroupReturnsFirstError(t *testing.T) {
	d := New(fakeCache{}, 0)
	env := value.NewEnvironment()

	wantErr := errors.New("task failed")
	tasks := []eval.Task{
		{Exec: func(*value.Environment) error { return wantErr }},
		{Exec: func(*value.Environment) error { return nil }},
	}

	if err := d.RunGroup(context.Background(), env, tasks); err == nil {
		t.Fatal("expected RunGroup to surface the failing task's error")
	}
}

func TestRunGroupIsolatesWritesFromTheSharedEnvironment(t *testing.T) {
	d := New(fakeCache{}, 0)
	env := value.NewEnvironment()
	env.Define("shared", value.Int{Value: 1})

	tasks := []eval.Task{
		{Reads: []string{"shared"}, Exec: func(env *value.Environment) error {
			env.Define("shared", value.Int{Value: 999})
			return nil
		}},
	}
	if err := d.RunGroup(context.Background(), env, tasks); err != nil {
		t.Fatalf("RunGroup: %v", err)
	}

	v, _ := env.Lookup("shared")
	if v.(value.Int).Value != 1 {
		t.Errorf("expected the task's write to stay isolated, shared = %v", v)
	}
}
