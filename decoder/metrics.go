package decoder

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pc = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "decoder_payload_count",
		Help: "The number of decoded payloads (per result).",
	}, []string{"result"})

	sbc = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "decoder_sensor_block_count",
		Help: "The number of decoded sensor blocks (per sensor index).",
	}, []string{"sensor"})
)

func payloadCounter(result string) prometheus.Counter {
	return pc.With(prometheus.Labels{"result": result})
}

func sensorBlockCounter(i int) prometheus.Counter {
	return sbc.With(prometheus.Labels{"sensor": strconv.Itoa(i)})
}
