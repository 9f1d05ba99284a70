package clock

import (
	"time"

	"github.com/davicafu/moderlab/internal/shared/app/ports"
)

// UTC es el TimeProvider de producción: reloj de pared en UTC.
type UTC struct{}

func NewUTC() UTC { return UTC{} }

func (UTC) Now() time.Time { return time.Now().UTC() }

// Fixed devuelve siempre el mismo instante. Para tests.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time { return f.Instant }

// Verificaciones estáticas
var (
	_ ports.TimeProvider = UTC{}
	_ ports.TimeProvider = Fixed{}
)
