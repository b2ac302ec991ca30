package common

import (
	uuid "github.com/nu7hatch/gouuid"
)

// GenUUID returns a random uuid string, used to tag simulation runs in logs and reports.
func GenUUID() string {
	// uuid.NewV4() should never actually return an error, the code uses
	// the crypto/rand Read Api to generate the uuid
	for {
		if id, err := uuid.NewV4(); err == nil {
			return id.String()
		}
	}
}
