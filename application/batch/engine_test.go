package batch

import (
	stdErrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/reglet-dev/reaper-bridge/capability"
	"github.com/reglet-dev/reaper-bridge/domain/entities"
	"github.com/reglet-dev/reaper-bridge/domain/errors"
	"github.com/reglet-dev/reaper-bridge/hostfuncs"
	"github.com/reglet-dev/reaper-bridge/internal/testutil"
)

type recordingObserver struct {
	batches     []string
	items       int
	failures    int
	truncations int
}

func (r *recordingObserver) ObserveBatch(kind string, items, failures int) {
	r.batches = append(r.batches, kind)
	r.items += items
	r.failures += failures
}

func (r *recordingObserver) ObserveTruncation(string) {
	r.truncations++
}

type fixture struct {
	host    *testutil.FakeHost
	session *testutil.Session
	table   *capability.Table
	engine  *Engine
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	host := testutil.NewFakeHost()
	session := testutil.NewSession()
	session.Install(host)

	table := capability.NewTable(capability.NewResolver(host))
	require.True(t, table.SetBootstrap(host.Bootstrap()))

	return &fixture{
		host:    host,
		session: session,
		table:   table,
		engine:  NewEngine(hostfuncs.NewCaller(host), table, opts...),
	}
}

func (f *fixture) track(params ...int) entities.Target {
	tr := &testutil.Track{Name: "Track"}
	for i, n := range params {
		tr.Effects = append(tr.Effects, testutil.NewEffect("FX"+string(rune('A'+i)), n))
	}
	return f.session.AddTrack(tr)
}

func sentinel(n int) []entities.ParameterDescriptor {
	out := make([]entities.ParameterDescriptor, n)
	for i := range out {
		out[i] = entities.ParameterDescriptor{Index: -1, Name: "untouched"}
	}
	return out
}

func TestReadParameters(t *testing.T) {
	t.Run("reads every parameter", func(t *testing.T) {
		f := newFixture(t)
		track := f.track(4)
		out := make([]entities.ParameterDescriptor, 8)

		report, err := f.engine.ReadParameters(track, 0, out)
		require.NoError(t, err)
		assert.Equal(t, 4, report.Count)
		assert.Equal(t, 4, report.Available)
		assert.False(t, report.Truncated)
		assert.NotEmpty(t, report.ID)

		assert.Equal(t, entities.ParameterDescriptor{
			Index: 2, Name: "Param 2", Value: 0.5, Min: 0, Max: 1, Formatted: "0.50",
		}, out[2])
		assert.Equal(t, entities.ParameterDescriptor{}, out[4])
	})

	t.Run("zero parameters is an empty success", func(t *testing.T) {
		f := newFixture(t)
		track := f.track(0)
		out := sentinel(4)

		report, err := f.engine.ReadParameters(track, 0, out)
		require.NoError(t, err)
		assert.Equal(t, 0, report.Count)
		assert.Equal(t, sentinel(4), out)
		assert.Equal(t, 1, f.host.TotalCalls())
	})

	t.Run("more parameters than capacity truncates", func(t *testing.T) {
		obs := &recordingObserver{}
		core, logs := observer.New(zap.WarnLevel)
		f := newFixture(t, WithObserver(obs), WithLogger(zap.New(core)))
		track := f.track(10)
		out := make([]entities.ParameterDescriptor, 4)

		report, err := f.engine.ReadParameters(track, 0, out)
		require.NoError(t, err)
		assert.Equal(t, 4, report.Count)
		assert.Equal(t, 10, report.Available)
		assert.True(t, report.Truncated)
		assert.Equal(t, "Param 3", out[3].Name)
		assert.Equal(t, 4, f.host.Calls(hostfuncs.OpTrackFXGetParam))

		assert.Equal(t, 1, obs.truncations)
		entries := logs.FilterMessage("parameter read truncated").All()
		require.Len(t, entries, 1)
		assert.Contains(t, entries[0].ContextMap(), "batch_id")
	})

	t.Run("configured cap truncates", func(t *testing.T) {
		f := newFixture(t, WithMaxParameters(2))
		track := f.track(5)
		report, err := f.engine.ReadParameters(track, 0, make([]entities.ParameterDescriptor, 8))
		require.NoError(t, err)
		assert.Equal(t, 2, report.Count)
		assert.True(t, report.Truncated)
	})

	t.Run("unresolvable operation aborts with no results", func(t *testing.T) {
		f := newFixture(t)
		track := f.track(10)
		f.host.Unregister(hostfuncs.OpTrackFXGetFormattedParamValue)
		out := sentinel(4)

		report, err := f.engine.ReadParameters(track, 0, out)
		require.Error(t, err)
		assert.Equal(t, 0, report.Count)
		assert.Equal(t, sentinel(4), out)
		assert.Zero(t, f.host.TotalCalls())

		var resErr *errors.ResolveError
		require.True(t, stdErrors.As(err, &resErr))
		assert.Equal(t, hostfuncs.OpTrackFXGetFormattedParamValue, resErr.Name)
		assert.True(t, errors.IsStructural(err))
		assert.Equal(t, "resolve TrackFX_GetFormattedParamValue: host returned no entry point", err.Error())
	})

	t.Run("no bootstrap aborts", func(t *testing.T) {
		host := testutil.NewFakeHost()
		testutil.NewSession().Install(host)
		table := capability.NewTable(capability.NewResolver(host))
		engine := NewEngine(hostfuncs.NewCaller(host), table)

		_, err := engine.ReadParameters(0x55000100, 0, make([]entities.ParameterDescriptor, 1))
		assert.True(t, stdErrors.Is(err, errors.ErrNotBootstrapped))
		assert.Equal(t, "resolve TrackFX_GetNumParams: host bootstrap lookup is not set", err.Error())
		assert.Zero(t, host.TotalCalls())
	})

	t.Run("invalid input", func(t *testing.T) {
		f := newFixture(t)
		track := f.track(3)

		tests := []struct {
			name    string
			target  entities.Target
			feature int
			out     []entities.ParameterDescriptor
			field   string
		}{
			{"nil target", 0, 0, make([]entities.ParameterDescriptor, 1), "target"},
			{"nil output", track, 0, nil, "output"},
			{"empty output", track, 0, []entities.ParameterDescriptor{}, "output"},
			{"negative feature", track, -1, make([]entities.ParameterDescriptor, 1), "feature index"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				report, err := f.engine.ReadParameters(tt.target, tt.feature, tt.out)
				var inErr *errors.InvalidInputError
				require.True(t, stdErrors.As(err, &inErr))
				assert.Equal(t, tt.field, inErr.Field)
				assert.Equal(t, 0, report.Count)
			})
		}
		assert.Zero(t, f.host.TotalCalls())
	})

	t.Run("per-item failure keeps defaults", func(t *testing.T) {
		obs := &recordingObserver{}
		f := newFixture(t, WithObserver(obs))
		track := f.track(3)
		f.session.Track(track).Effects[0].Params[1].Unformattable = true
		out := make([]entities.ParameterDescriptor, 3)

		report, err := f.engine.ReadParameters(track, 0, out)
		require.NoError(t, err)
		assert.Equal(t, 3, report.Count)
		assert.Equal(t, "Param 1", out[1].Name)
		assert.Equal(t, "", out[1].Formatted)
		assert.Equal(t, "0.67", out[2].Formatted)
		assert.Equal(t, 1, obs.failures)
	})

	t.Run("operations resolve once across batches", func(t *testing.T) {
		f := newFixture(t)
		track := f.track(6)
		for range 3 {
			_, err := f.engine.ReadParameters(track, 0, make([]entities.ParameterDescriptor, 6))
			require.NoError(t, err)
		}
		for _, op := range readOps {
			assert.Equal(t, 1, f.host.Lookups(op), op)
		}
	})
}

func TestApplyChanges(t *testing.T) {
	t.Run("one failing change does not stop the rest", func(t *testing.T) {
		f := newFixture(t)
		track := f.track(5)
		params := f.session.Track(track).Effects[0].Params
		params[2].Locked = true

		changes := make([]entities.ParameterChange, 5)
		for i := range changes {
			changes[i] = entities.ParameterChange{ParameterIndex: i, Value: 0.9}
		}

		report, err := f.engine.ApplyChanges(track, changes)
		require.NoError(t, err)
		assert.False(t, report.OK())
		assert.Equal(t, []entities.ItemStatus{
			entities.ItemApplied, entities.ItemApplied, entities.ItemFailed, entities.ItemApplied, entities.ItemApplied,
		}, report.Statuses)
		assert.Equal(t, []int{2}, report.Failed())
		assert.Equal(t, 5, f.host.Calls(hostfuncs.OpTrackFXSetParam))

		for i, p := range params {
			if i == 2 {
				assert.Equal(t, 0.4, p.Value)
				continue
			}
			assert.Equal(t, 0.9, p.Value)
		}

		require.Error(t, report.Err())
		var itemErr *errors.ItemError
		require.True(t, stdErrors.As(report.Err(), &itemErr))
		assert.Equal(t, 2, itemErr.Index)
	})

	t.Run("all applied", func(t *testing.T) {
		f := newFixture(t)
		track := f.track(2)
		report, err := f.engine.ApplyChanges(track, []entities.ParameterChange{
			{ParameterIndex: 0, Value: 0.1},
			{ParameterIndex: 1, Value: 0.2},
		})
		require.NoError(t, err)
		assert.True(t, report.OK())
		assert.NoError(t, report.Err())
		assert.Empty(t, report.Failed())
	})

	t.Run("unresolvable set aborts", func(t *testing.T) {
		f := newFixture(t)
		track := f.track(2)
		f.host.Unregister(hostfuncs.OpTrackFXSetParam)

		report, err := f.engine.ApplyChanges(track, []entities.ParameterChange{{Value: 1}})
		require.Error(t, err)
		assert.Empty(t, report.Statuses)
		assert.Zero(t, f.host.TotalCalls())
	})

	t.Run("invalid input", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.engine.ApplyChanges(0, []entities.ParameterChange{{}})
		assert.Equal(t, errors.ClassInvalidInput, errors.Classify(err))
	})

	t.Run("empty list is an empty success", func(t *testing.T) {
		f := newFixture(t)
		report, err := f.engine.ApplyChanges(f.track(1), nil)
		require.NoError(t, err)
		assert.True(t, report.OK())
		assert.Empty(t, report.Statuses)
		assert.Zero(t, f.host.Lookups(hostfuncs.OpTrackFXSetParam))
		assert.Zero(t, f.host.TotalCalls())
	})
}

func TestFormatValues(t *testing.T) {
	f := newFixture(t)
	track := f.track(3)
	f.session.Track(track).Effects[0].Params[1].Unformattable = true

	results, err := f.engine.FormatValues(track, []entities.FormatRequest{
		{ParameterIndex: 0, Value: 0.25},
		{ParameterIndex: 1, Value: 0.5},
		{ParameterIndex: 7, Value: 0.5},
		{ParameterIndex: 2, Value: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, []entities.FormatResult{
		{Text: "0.25", OK: true},
		{},
		{},
		{Text: "1.00", OK: true},
	}, results)

	before := f.host.Calls(hostfuncs.OpTrackFXFormatParamValue)
	results, err = f.engine.FormatValues(track, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, before, f.host.Calls(hostfuncs.OpTrackFXFormatParamValue))

	_, err = f.engine.FormatValues(0, []entities.FormatRequest{{}})
	assert.Equal(t, errors.ClassInvalidInput, errors.Classify(err))
}

func TestListFeatures(t *testing.T) {
	f := newFixture(t)
	track := f.track(3, 5)

	features, err := f.engine.ListFeatures(track)
	require.NoError(t, err)
	assert.Equal(t, []entities.FeatureInfo{
		{Index: 0, Name: "FXA", Parameters: 3},
		{Index: 1, Name: "FXB", Parameters: 5},
	}, features)

	empty, err := f.engine.ListFeatures(f.track())
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = f.engine.ListFeatures(0)
	assert.Error(t, err)
}

func TestTextCapacity(t *testing.T) {
	f := newFixture(t, WithTextCapacity(4))
	track := f.track(1)
	out := make([]entities.ParameterDescriptor, 1)

	_, err := f.engine.ReadParameters(track, 0, out)
	require.NoError(t, err)
	assert.Equal(t, "Par", out[0].Name)
	assert.Equal(t, "0.0", out[0].Formatted)
}
