package demon

import (
	"math"
	"testing"
)

func TestParticleAdvance(t *testing.T) {
	p := &Particle{Pos: Vec{X: 1.0, Y: 0.5}, Vel: Vec{X: 2.0, Y: -1.0}}
	p.Advance(0.01)

	if math.Abs(p.Pos.X-1.02) > 1e-12 {
		t.Errorf("expected x 1.02, got %f", p.Pos.X)
	}
	if math.Abs(p.Pos.Y-0.49) > 1e-12 {
		t.Errorf("expected y 0.49, got %f", p.Pos.Y)
	}
}

func TestParticleClassification(t *testing.T) {
	tests := []struct {
		name string
		vx   float64
		fast bool
	}{
		{"above threshold", 3.0, true},
		{"negative above threshold", -2.5, true},
		{"below threshold", 1.0, false},
		{"exactly at threshold", 2.0, false},
		{"exactly at negative threshold", -2.0, false},
		{"zero velocity", 0.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Particle{Vel: Vec{X: tt.vx}, Threshold: 2.0}
			if got := p.IsFast(); got != tt.fast {
				t.Errorf("IsFast() = %v, want %v", got, tt.fast)
			}
			want := Slow
			if tt.fast {
				want = Fast
			}
			if got := p.Classification(); got != want {
				t.Errorf("Classification() = %v, want %v", got, want)
			}
		})
	}
}

func TestParticleBounceX(t *testing.T) {
	p := &Particle{Vel: Vec{X: 1.5, Y: 0.3}}
	p.BounceX()

	if p.Vel.X != -1.5 {
		t.Errorf("expected vx -1.5, got %f", p.Vel.X)
	}
	if p.Vel.Y != 0.3 {
		t.Errorf("vy should be untouched, got %f", p.Vel.Y)
	}
}

func TestVecIsValid(t *testing.T) {
	tests := []struct {
		name  string
		v     Vec
		valid bool
	}{
		{"zero", Vec{}, true},
		{"normal", Vec{1.5, -0.3}, true},
		{"NaN x", Vec{math.NaN(), 0}, false},
		{"Inf y", Vec{0, math.Inf(1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestPolicyPermits(t *testing.T) {
	p := DefaultPolicy()

	if !p.Permits(Fast, TowardA) {
		t.Error("default policy should pass fast particles toward A")
	}
	if p.Permits(Fast, TowardB) {
		t.Error("default policy should bounce fast particles toward B")
	}
	if !p.Permits(Slow, TowardB) {
		t.Error("default policy should pass slow particles toward B")
	}
	if p.Permits(Slow, TowardA) {
		t.Error("default policy should bounce slow particles toward A")
	}
}

func TestPolicyValidate(t *testing.T) {
	if err := DefaultPolicy().Validate(); err != nil {
		t.Errorf("default policy should validate: %v", err)
	}

	bad := Policy{FastPass: 0, SlowPass: TowardB}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for zero direction")
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
		ok   bool
	}{
		{"toward-a", TowardA, true},
		{"left", TowardA, true},
		{"toward-b", TowardB, true},
		{"right", TowardB, true},
		{"up", 0, false},
	}

	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if tt.ok && (err != nil || got != tt.want) {
			t.Errorf("ParseDirection(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
		if !tt.ok && err == nil {
			t.Errorf("ParseDirection(%q) should fail", tt.in)
		}
	}
}
