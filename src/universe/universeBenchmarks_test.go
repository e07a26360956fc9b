package universe

import (
	"testing"

	"lifeterm/src/life"
	"lifeterm/src/pattern"
)

var (
	testTemplate = pattern.Template{Name: "ts1", Cells: []life.Point{{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}, {X: 4, Y: 2}, {X: 4, Y: 3}, {X: 5, Y: 3}}}

	benchRules = []string{"conway", "highlife", "daynight"}
)

const (
	width  = 200
	height = 200
)

func universeStep(u Universe, b *testing.B) {
	u.AddTemplate(testTemplate)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		u.Clear()
		_ = u.SettleTemplate("ts1")
		u.Inspect(func(Field) {}) //wait for settle
		b.StartTimer()
		u.Step()
		u.Inspect(func(Field) {}) //wait for finish
	}
	u.Close()
}

func universeRun(u Universe, b *testing.B) {
	u.AddTemplate(testTemplate)
	stateCh := u.StateCh()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		u.Clear()
		_ = u.SettleTemplate("ts1")
		b.StartTimer()
		u.Run()
		for {
			st := <-stateCh
			if st.RunningMode == RunningStateFinished {
				break
			}
		}
	}
	u.Close()
}

func newUniverseOptions(rule string) *Options {
	o := DefaultOptions
	o.Interval = 0
	o.Width = width
	o.Height = height
	o.MaxSteps = 100
	o.Rule = rule
	return &o
}

func Benchmark_Step(b *testing.B) {
	for _, r := range benchRules {
		b.Run(r, func(b *testing.B) {
			u, err := New(newUniverseOptions(r), nil)
			if err != nil {
				b.Fatal(err)
			}
			universeStep(u, b)
		})
	}
}

func Benchmark_Universe(b *testing.B) {
	for _, r := range benchRules {
		b.Run(r, func(b *testing.B) {
			u, err := New(newUniverseOptions(r), make(chan Status, 10))
			if err != nil {
				b.Fatal(err)
			}
			universeRun(u, b)
		})
	}
}
