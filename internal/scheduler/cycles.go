package scheduler

import (
	"math"
	"time"

	"github.com/chrisharrington/irrigo/internal/model/entities"
)

// planCycles splits totalMin of runtime into equal cycles that finish exactly
// at sunrise, each bounded by maxCycleMin and separated by soakMin of idle
// soak. Cycles are returned in chronological order; with an unbounded cycle
// (maxCycleMin <= 0) or a runtime within the bound, a single cycle is planned.
// Earlier cycles may start before midnight of the sunrise's calendar day.
func planCycles(totalMin, maxCycleMin float64, sunrise time.Time, soakMin int) []entities.IrrigationCycle {
	if totalMin <= 0 {
		return nil
	}

	if maxCycleMin <= 0 || totalMin <= maxCycleMin {
		return []entities.IrrigationCycle{{
			StartTime:   sunrise.Add(-minutes(totalMin)),
			DurationMin: round1(totalMin),
		}}
	}

	n := int(math.Ceil(totalMin / maxCycleMin))
	per := totalMin / float64(n)

	// Pack backwards from sunrise: cycle 0 below is the latest. Offsets use
	// the exact per-cycle length so rounding never accumulates.
	cycles := make([]entities.IrrigationCycle, n)
	for i := 0; i < n; i++ {
		end := sunrise.Add(-minutes(float64(i) * (per + float64(soakMin))))
		cycles[n-1-i] = entities.IrrigationCycle{
			StartTime:   end.Add(-minutes(per)),
			DurationMin: round1(per),
		}
	}
	return cycles
}

func minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}
