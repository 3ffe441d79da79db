// internal/benchlog/tokens.go
package benchlog

import (
	"regexp"
	"strconv"
	"strings"
)

const number = `[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`

var (
	// batch size: 128, batch_size=128, "Batch size 128", --batch_size=128
	batchLabelRe = regexp.MustCompile(`(?i)\bbatch[ _-]?size\b['"]?\s*[:=]?\s*['"]?(\d+)`)

	// BatchTimestamp<batch_index: 100, timestamp: 1563341010.463>
	batchTimestampRe = regexp.MustCompile(`BatchTimestamp<([^>]*)>`)
	timestampFieldRe = regexp.MustCompile(`timestamp\s*[:=]\s*(` + number + `)`)

	// 'global step':100, "time_taken": 4.2, examples_per_second=298.02
	keyValueRe = regexp.MustCompile(`['"]?([A-Za-z][A-Za-z0-9_ ]*?)['"]?\s*[:=]\s*['"]?(` + number + `)`)
)

// rateKeys are the key fragments that identify a throughput value.
var rateKeys = []string{"examples_per_sec", "exp_per_sec"}

type metric struct {
	globalStep     int64
	timeTaken      float64
	examplesPerSec float64
}

// badToken describes a numeric token that matched the pattern but could not
// be converted.
type badToken struct {
	key   string
	value string
	err   error
}

// parseBatchLabel returns the batch size labelled on line. ok is false when
// the line carries no label.
func parseBatchLabel(line string) (size int, ok bool, bad *badToken) {
	m := batchLabelRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false, nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false, &badToken{key: "batch_size", value: m[1], err: err}
	}
	return n, true, nil
}

// parseTimestamps returns every BatchTimestamp value on line along with the
// line stripped of those segments.
func parseTimestamps(line string) (stamps []float64, rest string, bad []badToken) {
	segments := batchTimestampRe.FindAllStringSubmatchIndex(line, -1)
	if segments == nil {
		return nil, line, nil
	}
	var b strings.Builder
	last := 0
	for _, seg := range segments {
		b.WriteString(line[last:seg[0]])
		last = seg[1]

		inner := line[seg[2]:seg[3]]
		m := timestampFieldRe.FindStringSubmatch(inner)
		if m == nil {
			continue
		}
		ts, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			bad = append(bad, badToken{key: "timestamp", value: m[1], err: err})
			continue
		}
		stamps = append(stamps, ts)
	}
	b.WriteString(line[last:])
	return stamps, b.String(), bad
}

// parseMetric extracts a metric tuple from a delimited key-value line. ok is
// false unless the line carries a throughput value.
func parseMetric(line string) (m metric, ok bool, bad []badToken) {
	for _, kv := range keyValueRe.FindAllStringSubmatch(line, -1) {
		key := normalizeKey(kv[1])
		raw := kv[2]
		switch {
		case isRateKey(key):
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				bad = append(bad, badToken{key: key, value: raw, err: err})
				continue
			}
			m.examplesPerSec = v
			ok = true
		case strings.Contains(key, "global_step"):
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				bad = append(bad, badToken{key: key, value: raw, err: err})
				continue
			}
			m.globalStep = int64(v)
		case strings.Contains(key, "time_taken"):
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				bad = append(bad, badToken{key: key, value: raw, err: err})
				continue
			}
			m.timeTaken = v
		}
	}
	return m, ok, bad
}

func normalizeKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	return strings.ReplaceAll(k, " ", "_")
}

func isRateKey(key string) bool {
	for _, frag := range rateKeys {
		if strings.Contains(key, frag) {
			return true
		}
	}
	return false
}
