// Package settle ejecuta operaciones independientes en paralelo y espera a que todas
// terminen, devolviendo el resultado de cada una por separado (disciplina "all-settled").
//
// Un fallo o un panic en una rama nunca cancela ni bloquea a las demás: cada rama
// produce su propio Outcome y el llamador decide qué hacer con él.
package settle

import (
	"errors"
	"fmt"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
)

// ErrPanicked envuelve el panic recuperado de una rama.
var ErrPanicked = errors.New("settle: la operación entró en pánico")

// Outcome resultado de una rama: éxito con valor o fallo con motivo.
type Outcome[T any] struct {
	Value T
	Err   error
}

// OK indica si la rama terminó con éxito.
func (o Outcome[T]) OK() bool { return o.Err == nil }

// ValueOr devuelve el valor si la rama tuvo éxito o def en caso contrario.
func (o Outcome[T]) ValueOr(def T) T {
	if o.Err != nil {
		return def
	}
	return o.Value
}

// Task operación asíncrona que devuelve un valor o un error.
type Task[T any] func() (T, error)

// All ejecuta todas las tareas del mismo tipo en paralelo y devuelve sus resultados
// en el mismo orden en que se recibieron.
func All[T any](tasks ...Task[T]) []Outcome[T] {
	out := make([]Outcome[T], len(tasks))
	var wg conc.WaitGroup
	for i, task := range tasks {
		wg.Go(func() { out[i] = capture(task) })
	}
	wg.Wait()
	return out
}

// Run2 ejecuta dos tareas heterogéneas en paralelo.
func Run2[A, B any](fa Task[A], fb Task[B]) (Outcome[A], Outcome[B]) {
	var (
		a  Outcome[A]
		b  Outcome[B]
		wg conc.WaitGroup
	)
	wg.Go(func() { a = capture(fa) })
	wg.Go(func() { b = capture(fb) })
	wg.Wait()
	return a, b
}

// Run3 ejecuta tres tareas heterogéneas en paralelo.
func Run3[A, B, C any](fa Task[A], fb Task[B], fc Task[C]) (Outcome[A], Outcome[B], Outcome[C]) {
	var (
		a  Outcome[A]
		b  Outcome[B]
		c  Outcome[C]
		wg conc.WaitGroup
	)
	wg.Go(func() { a = capture(fa) })
	wg.Go(func() { b = capture(fb) })
	wg.Go(func() { c = capture(fc) })
	wg.Wait()
	return a, b, c
}

func capture[T any](task Task[T]) (o Outcome[T]) {
	if task == nil {
		o.Err = errors.New("settle: tarea nula")
		return o
	}
	var pc panics.Catcher
	pc.Try(func() { o.Value, o.Err = task() })
	if r := pc.Recovered(); r != nil {
		var zero T
		o.Value = zero
		o.Err = fmt.Errorf("%w: %v", ErrPanicked, r.Value)
	}
	return o
}
