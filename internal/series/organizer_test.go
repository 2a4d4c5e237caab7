package series

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/shapedtime/wsindex/internal/classify"
	"github.com/shapedtime/wsindex/internal/metrics"
)

func searchResults() []FileEntry {
	return []FileEntry{
		{Ident: "f1", Name: "Star.Trek.S01E02.720p.mkv", Size: 700},
		{Ident: "f2", Name: "Star Trek 1x01 The Man Trap CZ dabing.avi", Size: 350},
		{Ident: "f3", Name: "Star.Trek.The.Motion.Picture.1979.1080p.mkv", Size: 4000},
		{Ident: "f4", Name: "Star.Trek.S01E02.1080p.mkv", Size: 1500},
		{Ident: "f5", Name: "Star.Trek.S02E01.Amok.Time.mkv", Size: 800},
		{Ident: "f1", Name: "Star.Trek.S01E02.720p.mkv", Size: 700},
		{Ident: "f6", Name: "Star Trek titulky.srt", Size: 40},
	}
}

func TestOrganize(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	o := NewOrganizer(2, nil)
	result, err := o.Organize(context.Background(), "Star Trek", searchResults())
	require.NoError(err)

	require.Equal("Star Trek", result.Index.Title)
	require.Len(result.Index.Seasons, 2)
	require.Equal(3, result.Index.EpisodeCount())
	require.Equal(4, result.Index.FileCount(), "duplicate ident must be folded once")

	require.Len(result.Standalone, 2)
	require.Equal("f3", result.Standalone[0].Ident)
	require.Equal(classify.KindVideo, result.Standalone[0].Kind)
	require.Equal("f6", result.Standalone[1].Ident)
	require.Equal(classify.KindSubtitle, result.Standalone[1].Kind)

	ep, ok := result.Index.Episode(1, 2)
	require.True(ok)
	require.Len(ep.Files, 2)
	require.Equal("f1", ep.Files[0].File.Ident, "input order is preserved")
	require.Equal(classify.KindVideo, ep.Files[0].File.Kind)
	require.Equal("720P", classify.Deref(ep.Files[0].Quality))
	require.Equal("1080P", classify.Deref(ep.Files[1].Quality))

	pilot, ok := result.Index.Episode(1, 1)
	require.True(ok)
	require.Equal("The Man Trap CZ dabing", classify.Deref(pilot.CommonTitle))
	require.Equal("CZ", classify.Deref(pilot.Files[0].Language))

	amok, ok := result.Index.Episode(2, 1)
	require.True(ok)
	require.Equal("Amok Time", classify.Deref(amok.CommonTitle))
}

func TestOrganizeEmpty(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	result, err := NewOrganizer(0, nil).Organize(context.Background(), "Anything", nil)
	require.NoError(err)
	require.Zero(result.Index.EpisodeCount())
	require.Empty(result.Standalone)
	require.NotNil(result.Standalone)
}

func TestOrganizeCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewOrganizer(1, nil).Organize(ctx, "Star Trek", searchResults())
	require.ErrorIs(t, err, context.Canceled)
}

func TestOrganizeRecordsMetrics(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	_, err := NewOrganizer(4, m).Organize(context.Background(), "Star Trek", searchResults())
	require.NoError(err)

	require.Equal(float64(4), testutil.ToFloat64(m.Classifications.WithLabelValues("SxxEyy")))
	require.Equal(float64(1), testutil.ToFloat64(m.Classifications.WithLabelValues("NxM")))
	require.Equal(float64(2), testutil.ToFloat64(m.Classifications.WithLabelValues(metrics.PatternNone)))
}
