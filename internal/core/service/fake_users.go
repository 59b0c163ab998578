package service

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/codetrail/marketplace-api/internal/core/ports"
)

// Synthetic account data served to non-admin callers of the management
// listing. The pools only need to be large enough to look plausible.

var fakeFirstNames = []string{
	"Ana", "Bruno", "Carla", "Diego", "Elena", "Fabio", "Gloria", "Hugo",
	"Irene", "Jorge", "Karla", "Luis", "Maria", "Nadia", "Oscar", "Paula",
	"Ramon", "Sofia", "Tomas", "Valeria",
}

var fakeWords = []string{
	"river", "stone", "cloud", "ember", "frost", "maple", "comet", "dune",
	"harbor", "lumen", "orbit", "pine", "quartz", "reef", "summit", "tide",
}

var fakeMailDomains = []string{
	"@mail.com", "@inbox.net", "@post.org", "@box.io",
}

func pick(pool []string) string {
	return pool[rand.Intn(len(pool))]
}

func fakeEmail() string {
	return fmt.Sprintf("%s_%s%d%s",
		strings.ToLower(pick(fakeFirstNames)), pick(fakeWords), rand.Intn(1000), pick(fakeMailDomains))
}

// fakeManagedUsers builds n synthetic accounts with sequential ids. None of
// them are admins or banned, and none correspond to a real record.
func fakeManagedUsers(n int) []ports.ManagedUser {
	now := time.Now().UTC()
	users := make([]ports.ManagedUser, n)
	for i := range users {
		users[i] = ports.ManagedUser{
			ID:        strconv.Itoa(i + 1),
			Email:     fakeEmail(),
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	return users
}
