package sensor

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/sensors"
)

// cpuSensorPriority lists sensor keys that usually carry the CPU or SoC
// package temperature, most specific first.
var cpuSensorPriority = []string{
	"cpu_thermal",
	"cpu-thermal",
	"coretemp",
	"k10temp",
	"soc_thermal",
	"acpitz",
}

// GopsutilSource reads host sensors through gopsutil instead of an external
// command, for machines without a vendor tool such as vcgencmd.
type GopsutilSource struct {
	Key string // exact sensor key to report; empty selects automatically
}

func (s *GopsutilSource) Read(_ context.Context) Reading {
	stats, err := sensors.SensorsTemperatures()
	if err != nil {
		return Reading{Error: fmt.Sprintf("sensors: %v", err)}
	}

	stat, ok := pickSensor(stats, s.Key)
	if !ok {
		if s.Key != "" {
			return Reading{Error: fmt.Sprintf("sensors: no sensor with key %q", s.Key)}
		}
		return Reading{Error: "sensors: no temperature sensors reported"}
	}
	return Reading{Celsius: stat.Temperature, OK: true}
}

// pickSensor selects the stat to report: an exact key match when key is set,
// else the first priority-list hit, else the first reported sensor.
func pickSensor(stats []sensors.TemperatureStat, key string) (sensors.TemperatureStat, bool) {
	if key != "" {
		for _, st := range stats {
			if st.SensorKey == key {
				return st, true
			}
		}
		return sensors.TemperatureStat{}, false
	}
	for _, want := range cpuSensorPriority {
		for _, st := range stats {
			if strings.Contains(st.SensorKey, want) {
				return st, true
			}
		}
	}
	if len(stats) > 0 {
		return stats[0], true
	}
	return sensors.TemperatureStat{}, false
}
