package model

import (
	"github.com/chrisharrington/irrigo/internal/model/entities"
	"github.com/chrisharrington/irrigo/internal/model/messages"
)

// Aliases so services can refer to the shared types through one import.

type (
	Zone                    = entities.Zone
	Grass                   = entities.Grass
	Soil                    = entities.Soil
	Location                = entities.Location
	DailyWeather            = entities.DailyWeather
	IrrigationCycle         = entities.IrrigationCycle
	IrrigationScheduleEntry = entities.IrrigationScheduleEntry

	ScheduleRequestEvent = messages.ScheduleRequestEvent
	SchedulePlannedEvent = messages.SchedulePlannedEvent
)
