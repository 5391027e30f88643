package session_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idlab-discover/aqpredict-cli/internal/apperr"
	"github.com/idlab-discover/aqpredict-cli/internal/aqi"
	"github.com/idlab-discover/aqpredict-cli/internal/predictor"
	"github.com/idlab-discover/aqpredict-cli/internal/session"
)

// fakeClient answers Predict with a canned prediction or error.
type fakeClient struct {
	predictor.Dummy
	pred  *aqi.Prediction
	err   error
	calls atomic.Int32
}

func (f *fakeClient) Predict(ctx context.Context, r aqi.Readings) (*aqi.Prediction, error) {
	f.calls.Add(1)
	return f.pred, f.err
}

// blockingClient holds Predict open until release is closed.
type blockingClient struct {
	predictor.Dummy
	entered chan struct{}
	release chan struct{}
	pred    *aqi.Prediction
	calls   atomic.Int32
}

func (b *blockingClient) Predict(ctx context.Context, r aqi.Readings) (*aqi.Prediction, error) {
	b.calls.Add(1)
	close(b.entered)
	<-b.release
	return b.pred, nil
}

func scenarioReadings() aqi.Readings {
	return aqi.Readings{
		PM25: 10, PM10: 20, NO: 1, NO2: 2, NOx: 3, NH3: 0.5,
		CO: 0.4, SO2: 5, O3: 30, Benzene: 0.1, Toluene: 0.2,
	}
}

func scenarioPrediction() *aqi.Prediction {
	return &aqi.Prediction{
		Category:      "Good",
		Confidence:    92,
		Probabilities: map[string]float64{"Good": 92, "Moderate": 5, "Unhealthy": 3},
		InputData:     scenarioReadings().Map(),
		Timestamp:     "2024-01-01T00:00:00Z",
	}
}

func TestController_StartsIdle(t *testing.T) {
	c := session.New(&fakeClient{})
	st := c.State()
	assert.Equal(t, session.Idle, st.Phase)
	assert.Nil(t, st.Prediction)
	assert.Empty(t, st.Message)
	assert.Equal(t, session.ComponentForm, st.Visible())
}

func TestController_Submit_Success_HoldsExactResponse(t *testing.T) {
	want := scenarioPrediction()
	client := &fakeClient{pred: want}
	c := session.New(client)

	st, err := c.Submit(context.Background(), scenarioReadings())
	require.NoError(t, err)
	assert.Equal(t, session.Success, st.Phase)
	assert.Same(t, want, st.Prediction)
	assert.Empty(t, st.Message)
	assert.Equal(t, session.ComponentResult, st.Visible())
	assert.Equal(t, st, c.State())
	assert.EqualValues(t, 1, client.calls.Load())
}

func TestController_Submit_FailureMessageVerbatim(t *testing.T) {
	client := &fakeClient{err: &apperr.RemoteError{Endpoint: "/predict", StatusCode: 500, Message: "X"}}
	c := session.New(client)

	st, err := c.Submit(context.Background(), scenarioReadings())
	require.NoError(t, err)
	assert.Equal(t, session.Failure, st.Phase)
	assert.Equal(t, "X", st.Message)
	assert.Nil(t, st.Prediction)
	assert.Equal(t, session.ComponentError, st.Visible())
}

func TestController_Submit_NilPredictionIsFailure(t *testing.T) {
	c := session.New(&fakeClient{})
	st, err := c.Submit(context.Background(), scenarioReadings())
	require.NoError(t, err)
	assert.Equal(t, session.Failure, st.Phase)
	assert.Equal(t, "Prediction failed", st.Message)
}

func TestController_ScenarioA_EndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"prediction":"Good","confidence":92,
			"probabilities":{"Good":92,"Moderate":5,"Unhealthy":3},
			"input_data":{"pm25":10,"pm10":20,"no":1,"no2":2,"nox":3,"nh3":0.5,"co":0.4,"so2":5,"o3":30,"benzene":0.1,"toluene":0.2},
			"timestamp":"2024-01-01T00:00:00Z"}`))
	}))
	defer server.Close()

	c := session.New(&predictor.HTTPClient{BaseURL: server.URL})
	st, err := c.Submit(context.Background(), scenarioReadings())
	require.NoError(t, err)
	require.Equal(t, session.Success, st.Phase)
	assert.Equal(t, scenarioPrediction(), st.Prediction)
}

func TestController_ScenarioB_RemoteFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"model unavailable"}`))
	}))
	defer server.Close()

	c := session.New(&predictor.HTTPClient{BaseURL: server.URL})
	st, err := c.Submit(context.Background(), scenarioReadings())
	require.NoError(t, err)
	assert.Equal(t, session.State{Phase: session.Failure, Message: "model unavailable"}, st)
}

func TestController_RemoteFailureWithoutBody_UsesDefault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := session.New(&predictor.HTTPClient{BaseURL: server.URL})
	st, _ := c.Submit(context.Background(), scenarioReadings())
	assert.Equal(t, session.State{Phase: session.Failure, Message: "Prediction failed"}, st)
}

func TestController_ScenarioC_TransportFailureThenReset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c := session.New(&predictor.HTTPClient{BaseURL: url})
	st, err := c.Submit(context.Background(), scenarioReadings())
	require.NoError(t, err)
	assert.Equal(t, session.Failure, st.Phase)
	assert.Nil(t, st.Prediction)
	assert.Contains(t, st.Message, "cannot reach prediction service")

	st = c.Reset()
	assert.Equal(t, session.State{Phase: session.Idle}, st)
	assert.Equal(t, session.ComponentForm, st.Visible())
}

func TestController_Reset_FromIdleIsNoop(t *testing.T) {
	c := session.New(&fakeClient{})
	var changes int
	c.OnChange(func(from, to session.State) { changes++ })

	st := c.Reset()
	assert.Equal(t, session.State{Phase: session.Idle}, st)
	assert.Equal(t, 0, changes)
}

func TestController_Reset_FromSuccess(t *testing.T) {
	c := session.New(&fakeClient{pred: scenarioPrediction()})
	_, err := c.Submit(context.Background(), scenarioReadings())
	require.NoError(t, err)

	st := c.Reset()
	assert.Equal(t, session.State{Phase: session.Idle}, st)
}

func TestController_DismissError(t *testing.T) {
	client := &fakeClient{err: errors.New("boom")}
	c := session.New(client)

	// no-op from Idle
	assert.Equal(t, session.Idle, c.DismissError().Phase)

	st, _ := c.Submit(context.Background(), scenarioReadings())
	require.Equal(t, session.Failure, st.Phase)
	assert.Equal(t, session.State{Phase: session.Idle}, c.DismissError())

	// no-op from Success
	client.err = nil
	client.pred = scenarioPrediction()
	st, _ = c.Submit(context.Background(), scenarioReadings())
	require.Equal(t, session.Success, st.Phase)
	assert.Equal(t, session.Success, c.DismissError().Phase)
}

func TestController_SubmitWhileSubmitting_IsRejected(t *testing.T) {
	client := &blockingClient{
		entered: make(chan struct{}),
		release: make(chan struct{}),
		pred:    scenarioPrediction(),
	}
	c := session.New(client)

	var wg sync.WaitGroup
	wg.Add(1)
	var first session.State
	go func() {
		defer wg.Done()
		first, _ = c.Submit(context.Background(), scenarioReadings())
	}()
	<-client.entered

	st, err := c.Submit(context.Background(), scenarioReadings())
	assert.ErrorIs(t, err, apperr.ErrInFlight)
	assert.Equal(t, session.State{Phase: session.Submitting}, st)
	assert.False(t, c.Begin())

	// no cancellation: reset and dismiss leave the request in flight
	assert.Equal(t, session.Submitting, c.Reset().Phase)
	assert.Equal(t, session.Submitting, c.DismissError().Phase)
	assert.Equal(t, session.ComponentLoader, c.State().Visible())

	// a stray Run cannot issue a second call either
	assert.Equal(t, session.Submitting, c.Run(context.Background(), scenarioReadings()).Phase)

	close(client.release)
	wg.Wait()

	assert.EqualValues(t, 1, client.calls.Load())
	assert.Equal(t, session.Success, first.Phase)
	assert.Equal(t, session.Success, c.State().Phase)
}

func TestController_RunWithoutBegin_DoesNotCallClient(t *testing.T) {
	client := &fakeClient{pred: scenarioPrediction()}
	c := session.New(client)

	st := c.Run(context.Background(), scenarioReadings())
	assert.Equal(t, session.Idle, st.Phase)
	assert.EqualValues(t, 0, client.calls.Load())
}

func TestController_BeginDiscardsPreviousOutcome(t *testing.T) {
	client := &fakeClient{err: errors.New("first failure")}
	c := session.New(client)
	_, _ = c.Submit(context.Background(), scenarioReadings())

	require.True(t, c.Begin())
	assert.Equal(t, session.State{Phase: session.Submitting}, c.State())
}

func TestController_ObserversSeeTransitions(t *testing.T) {
	c := session.New(&fakeClient{pred: scenarioPrediction()})
	var seen []string
	c.OnChange(func(from, to session.State) {
		seen = append(seen, from.Phase.String()+"->"+to.Phase.String())
	})

	_, _ = c.Submit(context.Background(), scenarioReadings())
	c.Reset()

	assert.Equal(t, []string{"idle->submitting", "submitting->success", "success->idle"}, seen)
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "idle", session.Idle.String())
	assert.Equal(t, "failure", session.Failure.String())
	assert.Equal(t, "unknown", session.Phase(42).String())
}
