package session

import (
	"fmt"
	"time"

	"github.com/i474232898/weather-dashboard/internal/i18n"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// ModalState is the location modal state.
type ModalState int

const (
	ModalClosed ModalState = iota
	ModalOpen
	ModalRequesting
	ModalError
)

var modalNames = map[ModalState]string{
	ModalClosed:     "closed",
	ModalOpen:       "open",
	ModalRequesting: "requesting",
	ModalError:      "error",
}

func (m ModalState) String() string {
	if name, ok := modalNames[m]; ok {
		return name
	}
	return fmt.Sprintf("modal(%d)", int(m))
}

func (m ModalState) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// State is a point-in-time copy of the session for renderers.
type State struct {
	ID                  string                   `json:"id"`
	Snapshot            *weather.WeatherSnapshot `json:"snapshot,omitempty"`
	Version             uint64                   `json:"version"`
	Location            *weather.Location        `json:"location,omitempty"`
	UpdatedAt           time.Time                `json:"updatedAt,omitempty"`
	IsLoading           bool                     `json:"isLoading"`
	Error               string                   `json:"error,omitempty"`
	Modal               ModalState               `json:"modal"`
	IsLocationModalOpen bool                     `json:"isLocationModalOpen"`
	IsLocationLoading   bool                     `json:"isLocationLoading"`
	LocationError       string                   `json:"locationError,omitempty"`
	Language            i18n.Language            `json:"language"`
	IsHydrated          bool                     `json:"isHydrated"`
}
