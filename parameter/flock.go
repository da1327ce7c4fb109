package parameter

// Default tunables, the values the flock was balanced with
const (
	DefaultAlignWeight    = 0.8
	DefaultCohereWeight   = 0.4
	DefaultContainWeight  = 0.8
	DefaultSeparateWeight = 0.2
	DefaultWanderWeight   = 1.0

	DefaultMaxForce = 120.0
	DefaultMaxSpeed = 60.0

	DefaultNearRange     = 60.0
	DefaultSeparateRange = 15.0

	DefaultContainRadius = 512.0
	DefaultContainTime   = 1.0

	// DefaultWanderRadius is a fraction of maxForce
	DefaultWanderRadius = 0.25
	// DefaultWanderSpeed is in degrees per second
	DefaultWanderSpeed    = 360.0
	DefaultWanderStrength = 0.5

	DefaultQuantity  = 100
	DefaultTimeScale = 1.0
)

// Tuning ranges applied by the configuration surface, never by the simulation core
const (
	WeightMin = 0.0
	WeightMax = 1.0

	MaxForceMin = 30.0
	MaxForceMax = 300.0
	MaxSpeedMin = 60.0
	MaxSpeedMax = 300.0

	NearRangeMin     = 5.0
	NearRangeMax     = 120.0
	SeparateRangeMin = 5.0
	SeparateRangeMax = 60.0

	ContainRadiusMin = 64.0
	ContainRadiusMax = 512.0
	ContainTimeMin   = 0.0
	ContainTimeMax   = 3.0

	WanderRadiusMin   = 0.0
	WanderRadiusMax   = 0.5
	WanderSpeedMin    = 0.0
	WanderSpeedMax    = 360.0
	WanderStrengthMin = 0.0
	WanderStrengthMax = 1.0

	QuantityMin = 1
	QuantityMax = 100

	TimeScaleMin = 0.1
	TimeScaleMax = 10.0
)
