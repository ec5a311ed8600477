package matching

import (
	"go.uber.org/zap"

	"github.com/ezgiver/JobFinder/internal/jobs"
	"github.com/ezgiver/JobFinder/internal/sponsors"
)

// Verifier deduplicates match lookups across job rows. The cache is keyed by
// the normalized company name and lives for one pipeline run; names that
// normalize to the same key share a single Result, whichever row came first.
type Verifier struct {
	matcher  *Matcher
	register *sponsors.Register
	cache    map[string]Result
	logger   *zap.Logger
}

func NewVerifier(matcher *Matcher, register *sponsors.Register, logger *zap.Logger) *Verifier {
	return &Verifier{
		matcher:  matcher,
		register: register,
		cache:    make(map[string]Result),
		logger:   logger,
	}
}

// Verify matches a single company name, consulting the cache first. The
// register is only scanned once per distinct normalized name.
func (v *Verifier) Verify(name string) Result {
	key := sponsors.Normalize(name)
	if key == "" {
		return Result{Input: name}
	}

	if cached, ok := v.cache[key]; ok {
		return cached
	}

	result := v.matcher.Match(name, v.register)
	v.cache[key] = result

	v.logger.Debug("matched company against sponsor register",
		zap.String("company", name),
		zap.Bool("matched", result.Matched),
		zap.Int("confidence", result.Confidence),
	)

	return result
}

// VerifyAll returns one Result per job row, in row order. Rows sharing a
// company name receive the identical cached Result.
func (v *Verifier) VerifyAll(j *jobs.Jobs) []Result {
	companies := j.Companies()
	results := make([]Result, 0, len(companies))
	for _, name := range companies {
		results = append(results, v.Verify(name))
	}
	return results
}

// Lookups reports how many distinct names have been matched so far.
func (v *Verifier) Lookups() int {
	return len(v.cache)
}
