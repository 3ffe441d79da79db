package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwiater/benchlog/internal/benchlog"
)

func result(source string, blocks []benchlog.Block, recs ...benchlog.Record) *benchlog.Result {
	for i := range recs {
		recs[i].Source = source
	}
	return &benchlog.Result{Source: source, Records: recs, Blocks: blocks}
}

func rec(bs int, rate, taken float64) benchlog.Record {
	return benchlog.Record{BatchSize: bs, ExamplesPerSec: rate, TimeTaken: taken}
}

func fixture() *Aggregator {
	a := NewAggregator()
	a.Add(result("logs/p3_2xlarge.log",
		[]benchlog.Block{
			{BatchSize: 128, Records: 3, Timestamps: 2, FirstTimestamp: 0, LastTimestamp: 3600},
			{BatchSize: 256, Records: 2, Timestamps: 2, FirstTimestamp: 0, LastTimestamp: 1800},
		},
		rec(128, 298, 4.3), rec(128, 296, 4.3), rec(128, 302, 4.2),
		rec(256, 510, 8), rec(256, 530, 8),
	))
	a.Add(result("logs/g4dn.log",
		[]benchlog.Block{
			{BatchSize: 128, Records: 2, Timestamps: 2, FirstTimestamp: 0, LastTimestamp: 7200},
		},
		rec(128, 200, 0), rec(128, 400, 0),
	))
	return a
}

func TestByBatch(t *testing.T) {
	groups := fixture().ByBatch()
	require.Len(t, groups, 2)

	g := groups[0]
	assert.Equal(t, 128, g.BatchSize)
	assert.Equal(t, "bs=128", g.Label)
	assert.Equal(t, 5, g.Records)
	assert.Equal(t, 2, g.Files)
	require.NotNil(t, g.Rate)
	assert.InDelta(t, 299.2, g.Rate.Mean, 1e-9)
	assert.Equal(t, 200.0, g.Rate.Min)
	assert.Equal(t, 400.0, g.Rate.Max)
	assert.InDelta(t, 3.0, g.Hours, 1e-9)
	require.NotNil(t, g.TimeTaken)
	assert.Equal(t, 3, g.TimeTaken.N, "zero step times are not sampled")

	assert.Equal(t, 256, groups[1].BatchSize)
	assert.Equal(t, 1, groups[1].Files)
	assert.InDelta(t, 10.0, groups[1].Rate.StdDev, 1e-9)
}

func TestByFile_OrderAndLabels(t *testing.T) {
	groups := fixture().ByFile()
	require.Len(t, groups, 3)
	var labels []string
	for _, g := range groups {
		labels = append(labels, g.Label)
	}
	assert.Equal(t, []string{"p3_2xlarge bs=128", "p3_2xlarge bs=256", "g4dn bs=128"}, labels)
	assert.InDelta(t, 2.0, groups[2].Hours, 1e-9)
	assert.Nil(t, groups[2].TimeTaken)
}

func TestByFile_EmptyRatesDoNotPanic(t *testing.T) {
	a := NewAggregator()
	a.Add(result("only-stamps.log", []benchlog.Block{{BatchSize: 64, Timestamps: 2, LastTimestamp: 360}}))
	groups := a.ByFile()
	require.Len(t, groups, 1)
	assert.Nil(t, groups[0].Rate)
	assert.Zero(t, groups[0].Records)
	assert.InDelta(t, 0.1, groups[0].Hours, 1e-9)
	assert.Contains(t, SummaryLine(groups[0]), "n=0")
}

func TestAdd_ReplacesSameSource(t *testing.T) {
	a := fixture()
	a.Add(result("logs/g4dn.log", nil, rec(128, 1, 0)))
	assert.Equal(t, []string{"logs/p3_2xlarge.log", "logs/g4dn.log"}, a.Sources())
	assert.Equal(t, 6, a.Len())
}

func TestCompare(t *testing.T) {
	cmps, err := fixture().Compare("logs/p3_2xlarge.log")
	require.NoError(t, err)
	require.Len(t, cmps, 1)
	c := cmps[0]
	assert.Equal(t, "logs/g4dn.log", c.Source)
	assert.Equal(t, 128, c.BatchSize)
	assert.InDelta(t, 298.0+2.0/3.0, c.BaselineMean, 1e-9)
	assert.InDelta(t, (300-c.BaselineMean)/c.BaselineMean*100, c.ChangePct, 1e-9)

	_, err = fixture().Compare("nope.log")
	assert.ErrorIs(t, err, ErrUnknownBaseline)
}

func TestSummaryLine(t *testing.T) {
	g := fixture().ByFile()[1]
	assert.Equal(t,
		"p3_2xlarge bs=256  n=2  mean 520.00 ± 10.00 ex/s  min 510.00  median 520.00  max 530.00  total 0.50 h",
		SummaryLine(g))
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, "By batch size", fixture().ByBatch()))
	out := buf.String()
	assert.Contains(t, out, "By batch size")
	assert.Contains(t, out, "bs=128  n=5")
	assert.Contains(t, out, "bs=256  n=2")

	buf.Reset()
	require.NoError(t, WriteText(&buf, "Empty", nil))
	assert.Contains(t, buf.String(), "no benchmark records found")
}

func TestWriteComparisonText(t *testing.T) {
	cmps, err := fixture().Compare("logs/p3_2xlarge.log")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, WriteComparisonText(&buf, "logs/p3_2xlarge.log", cmps))
	assert.Contains(t, buf.String(), "g4dn bs=128")
	assert.Contains(t, buf.String(), "+0.45%")
}

func TestWriteJSON(t *testing.T) {
	a := fixture()
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, a.Sources(), a.ByBatch(), nil))

	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, a.Sources(), doc.Sources)
	require.Len(t, doc.Groups, 2)
	assert.Equal(t, 128, doc.Groups[0].BatchSize)
	require.NotNil(t, doc.Groups[0].Rate)
	assert.InDelta(t, 299.2, doc.Groups[0].Rate.Mean, 1e-9)
	assert.NotContains(t, buf.String(), "comparisons")
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	groups := append(fixture().ByFile(), Group{Source: "empty.log", BatchSize: 32})
	require.NoError(t, WriteCSV(&buf, groups))

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{"logs/p3_2xlarge.log", "256", "2", "1", "520.0000", "10.0000", "510.0000", "520.0000", "530.0000", "0.5000"}, rows[2])
	assert.Equal(t, "", rows[4][4])
}

func TestByFile_SameBaseNameKeepsParent(t *testing.T) {
	a := NewAggregator()
	a.Add(result("runs/a/p3.log", nil, rec(128, 1, 0)))
	a.Add(result("runs/b/p3.log", nil, rec(128, 2, 0)))
	a.Add(result("other.log", nil, rec(128, 3, 0)))

	var labels []string
	for _, g := range a.ByFile() {
		labels = append(labels, g.Label)
	}
	assert.Equal(t, []string{"a/p3 bs=128", "b/p3 bs=128", "other bs=128"}, labels)

	cmps, err := a.Compare("runs/a/p3.log")
	require.NoError(t, err)
	require.Len(t, cmps, 2)
	assert.Equal(t, "b/p3 bs=128", cmps[0].Label)

	var buf bytes.Buffer
	require.NoError(t, WriteComparisonText(&buf, "runs/a/p3.log", cmps))
	assert.Contains(t, buf.String(), "b/p3 bs=128")
}

func TestDisplayNames(t *testing.T) {
	cases := []struct {
		sources []string
		want    map[string]string
	}{
		{[]string{"x.log"}, map[string]string{"x.log": "x"}},
		{[]string{"a/x.log", "b/a/x.log"}, map[string]string{"a/x.log": "a/x", "b/a/x.log": "b/a/x"}},
		{[]string{"x.log", "./x.log"}, map[string]string{"x.log": "x.log", "./x.log": "./x.log"}},
		{[]string{"/logs/x.log", "/tmp/x.log", "y.log"}, map[string]string{"/logs/x.log": "logs/x", "/tmp/x.log": "tmp/x", "y.log": "y"}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, displayNames(tc.sources), "%v", tc.sources)
	}
}
