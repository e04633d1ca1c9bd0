package game

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var guessOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "shadle_guesses_total",
	Help: "Recorded guess submissions by outcome.",
}, []string{"result"})
