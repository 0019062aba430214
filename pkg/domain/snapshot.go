package domain

import "time"

// Snapshot is the persistable state of a suite: enough to rebuild the engine
// and resume updating from the stored masses.
type Snapshot struct {
	Goal         Goal      `json:"goal"`
	Actions      []Action  `json:"actions"`
	Params       Params    `json:"params"`
	Prior        Masses    `json:"prior"`
	Masses       Masses    `json:"masses"`
	Observations int       `json:"observations"`
	UpdatedAt    time.Time `json:"updated_at"`
}
