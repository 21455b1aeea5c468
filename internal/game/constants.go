package game

import "time"

// Simulation timing
const (
	TickRate     = 20 // ticks per second
	TickInterval = time.Second / TickRate
)

// Collision
const (
	DefaultActorSize = 40.0 // side of the square collision box
)

// Monster AI
const (
	PatrolSpeedRatio = 0.9  // patrol moves slower than chase
	PatrolWait       = 1.0  // seconds idle after reaching a patrol target
	ArrivalThreshold = 10.0 // distance at which a patrol target counts as reached
	FacingDeadZone   = 0.1  // horizontal step below which facing is left alone
)

// Scheduler owner tags
const (
	ownerMonsters = "monsters"
	ownerPlayer   = "player"
	ownerZone     = "upgrade_zone"
)
