// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package constant

import (
	"math"
	"testing"
)

func TestValue_String(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{MakeBool(true), "true"},
		{MakeBool(false), "false"},
		{MakeInt(0), "0"},
		{MakeInt(-42), "-42"},
		{MakeFloat(1), "1.0"},
		{MakeFloat(0.5), "0.5"},
		{MakeFloat(-2), "-2.0"},
		{MakeFloat(1e21), "1e+21"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.value.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		lexeme  string
		want    Value
		wantErr bool
	}{
		{"true", MakeBool(true), false},
		{"false", MakeBool(false), false},
		{"7", MakeInt(7), false},
		{"0x10", MakeInt(16), false},
		{"1.5", MakeFloat(1.5), false},
		{"2e3", MakeFloat(2000), false},
		{"1.", MakeFloat(1), false},
		{"99999999999", Value{}, true},
		{"1e999", Value{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.lexeme, func(t *testing.T) {
			got, err := Parse(tt.lexeme)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.lexeme, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.lexeme, got, tt.want)
			}
		})
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		name   string
		fold   func(x, y Value) (Value, bool)
		x, y   Value
		want   Value
		wantOK bool
	}{
		{"add int", Add, MakeInt(2), MakeInt(3), MakeInt(5), true},
		{"add wraps", Add, MakeInt(math.MaxInt32), MakeInt(1), MakeInt(math.MinInt32), true},
		{"add float", Add, MakeFloat(0.25), MakeFloat(0.5), MakeFloat(0.75), true},
		{"add mixed", Add, MakeInt(1), MakeFloat(1), Value{}, false},
		{"sub", Sub, MakeInt(2), MakeInt(5), MakeInt(-3), true},
		{"mul", Mul, MakeFloat(1.5), MakeFloat(2), MakeFloat(3), true},
		{"div truncates", Div, MakeInt(-7), MakeInt(2), MakeInt(-3), true},
		{"div by zero", Div, MakeInt(1), MakeInt(0), Value{}, false},
		{"float div by zero", Div, MakeFloat(1), MakeFloat(0), Value{}, false},
		{"add bool", Add, MakeBool(true), MakeBool(true), Value{}, false},
		{"eq", Equal, MakeInt(3), MakeInt(3), MakeBool(true), true},
		{"ne", NotEqual, MakeBool(true), MakeBool(false), MakeBool(true), true},
		{"lt", Less, MakeFloat(1), MakeFloat(2), MakeBool(true), true},
		{"le", LessEqual, MakeInt(2), MakeInt(2), MakeBool(true), true},
		{"gt", Greater, MakeInt(2), MakeInt(2), MakeBool(false), true},
		{"ge", GreaterEqual, MakeInt(3), MakeInt(2), MakeBool(true), true},
		{"lt bool", Less, MakeBool(false), MakeBool(true), Value{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.fold(tt.x, tt.y)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnaryFold(t *testing.T) {
	if v, ok := Neg(MakeInt(4)); !ok || v != MakeInt(-4) {
		t.Errorf("Neg(4) = %v, %v", v, ok)
	}
	if v, ok := Neg(MakeFloat(0.5)); !ok || v != MakeFloat(-0.5) {
		t.Errorf("Neg(0.5) = %v, %v", v, ok)
	}
	if _, ok := Neg(MakeBool(true)); ok {
		t.Error("Neg(true) should not fold")
	}
	if v, ok := Not(MakeBool(true)); !ok || v != MakeBool(false) {
		t.Errorf("Not(true) = %v, %v", v, ok)
	}
	if _, ok := Not(MakeInt(1)); ok {
		t.Error("Not(1) should not fold")
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		x    Value
		k    Kind
		want Value
	}{
		{MakeFloat(2.75), Int, MakeInt(2)},
		{MakeInt(3), Float, MakeFloat(3)},
		{MakeInt(0), Bool, MakeBool(false)},
		{MakeBool(true), Float, MakeFloat(1)},
		{MakeInt(5), Int, MakeInt(5)},
	}

	for _, tt := range tests {
		if got := Convert(tt.x, tt.k); got != tt.want {
			t.Errorf("Convert(%v, %v) = %v, want %v", tt.x, tt.k, got, tt.want)
		}
	}
}
