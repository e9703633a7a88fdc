package services

import (
	"time"

	"github.com/vncsmyrnk/slotpoll/internal/core/ports"
)

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

func SystemClock() ports.Clock { return systemClock{} }
