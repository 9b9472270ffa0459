package config

// Presets name the classic demon setups. The gray-zone preset uses the
// strict greater-than classification like every other one; the historical
// exact-inequality check it descends from almost never fired for
// continuous velocities.
var Presets = map[string]*Config{
	"classic": {
		Particles: 50, Dims: 1, Dt: 0.01, Steps: 1000, Threshold: 2.0,
		Box:     BoxConfig{Lx: 2.0, Ly: 1.0},
		Barrier: BarrierConfig{Center: 1.0, HalfWidth: 0.05},
		Init: InitConfig{
			XMin: 0.0, XMax: 2.0, YMin: -0.8, YMax: 0.8,
			VelMean: 0.5, VelSigma: 4.0,
		},
		Policy: PolicyConfig{FastPass: "toward-a", SlowPass: "toward-b"},
	},
	"classic-2d": {
		Particles: 50, Dims: 2, Dt: 0.01, Steps: 1000, Threshold: 2.0,
		Box:     BoxConfig{Lx: 2.0, Ly: 1.0},
		Barrier: BarrierConfig{Center: 1.0, HalfWidth: 0.05},
		Init: InitConfig{
			XMin: 0.2, XMax: 2.0, YMin: -0.8, YMax: 0.8,
			VelMean: 0.0, VelSigma: 1.5,
		},
		Policy: PolicyConfig{FastPass: "toward-a", SlowPass: "toward-b"},
	},
	"energy-2d": {
		Particles: 50, Dims: 2, Dt: 0.01, Steps: 750, Threshold: 2.0,
		Box:     BoxConfig{Lx: 2.0, Ly: 1.0},
		Barrier: BarrierConfig{Center: 1.0, HalfWidth: 0.05},
		Init: InitConfig{
			XMin: 0.2, XMax: 2.0, YMin: -0.8, YMax: 0.8,
			VelMean: 0.0, VelSigma: 1.5,
		},
		Policy: PolicyConfig{FastPass: "toward-a", SlowPass: "toward-b"},
	},
	"gray-zone": {
		Particles: 20, Dims: 1, Dt: 0.01, Steps: 1000, Threshold: 2.0,
		Box:     BoxConfig{Lx: 2.0, Ly: 1.0},
		Barrier: BarrierConfig{Center: 1.0, HalfWidth: 0.02},
		Init: InitConfig{
			XMin: 0.0, XMax: 2.0, YMin: -0.8, YMax: 0.8,
			VelMean: 0.0, VelSigma: 2.5,
		},
		Policy: PolicyConfig{FastPass: "toward-a", SlowPass: "toward-b"},
	},
	"crossing": {
		Particles: 20, Dims: 1, Dt: 0.01, Steps: 1000, Threshold: 2.0,
		Box:     BoxConfig{Lx: 2.0, Ly: 1.0},
		Barrier: BarrierConfig{Center: 1.0, HalfWidth: 0.02},
		Init: InitConfig{
			XMin: 0.0, XMax: 2.0, YMin: -0.8, YMax: 0.8,
			VelMean: 0.0, VelSigma: 2.1,
		},
		Policy: PolicyConfig{FastPass: "toward-b", SlowPass: "toward-a"},
	},
	"oneway": {
		Particles: 20, Dims: 1, Dt: 0.01, Steps: 1000, Threshold: 2.0,
		Box:     BoxConfig{Lx: 2.0, Ly: 1.0},
		Barrier: BarrierConfig{Center: 1.0, HalfWidth: 0.02},
		Init: InitConfig{
			XMin: 0.0, XMax: 2.0, YMin: -0.8, YMax: 0.8,
			VelMean: 0.0, VelSigma: 4.0,
		},
		Policy: PolicyConfig{FastPass: "toward-b", SlowPass: "toward-a"},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
