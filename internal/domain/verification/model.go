package verification

import (
	"math"

	"github.com/godyclif/vet/internal/domain/animals"
	"github.com/godyclif/vet/internal/domain/medreports"
	"github.com/godyclif/vet/internal/domain/treatments"
	"github.com/godyclif/vet/internal/domain/vaccines"
)

// Record es la ficha pública que se obtiene con un número de certificado.
type Record struct {
	Animal     animals.Animal
	Age        int
	Treatments []treatments.Treatment
	Vaccines   []vaccines.Vaccine
	Reports    []medreports.MedReport
	Costs      Costs
}

// Costs suma lo facturado por rubro, redondeado a centavos. Reports es
// informativo: Total solo cuenta tratamientos y vacunas.
type Costs struct {
	Treatments float64
	Vaccines   float64
	Reports    float64
	Total      float64
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func sumCosts(ts []treatments.Treatment, vs []vaccines.Vaccine, rs []medreports.MedReport) Costs {
	var c Costs
	for _, t := range ts {
		c.Treatments += t.Cost
	}
	for _, v := range vs {
		c.Vaccines += v.Cost
	}
	for _, r := range rs {
		c.Reports += r.Cost()
	}
	c.Treatments = roundCents(c.Treatments)
	c.Vaccines = roundCents(c.Vaccines)
	c.Reports = roundCents(c.Reports)
	c.Total = roundCents(c.Treatments + c.Vaccines)
	return c
}
