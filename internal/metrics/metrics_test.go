package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestCounterAddAndInc(t *testing.T) {
	reg := GetRegistry()
	counter := reg.NewCounter("test_counter_total", "测试计数器", []string{"result"})

	counter.Inc("ok")
	counter.Inc("ok")
	counter.Add(3, "fail")

	counter.mu.RLock()
	defer counter.mu.RUnlock()
	if counter.values["ok"] != 2 {
		t.Errorf("ok counter = %f, want 2", counter.values["ok"])
	}
	if counter.values["fail"] != 3 {
		t.Errorf("fail counter = %f, want 3", counter.values["fail"])
	}
}

func TestGaugeSetOverwrites(t *testing.T) {
	reg := GetRegistry()
	gauge := reg.NewGauge("test_gauge", "测试仪表盘", []string{"state"})

	gauge.Set(5, "open")
	gauge.Set(2, "open")

	gauge.mu.RLock()
	defer gauge.mu.RUnlock()
	if gauge.values["open"] != 2 {
		t.Errorf("gauge = %f, want the last set value 2", gauge.values["open"])
	}
}

func TestHistogramObserve(t *testing.T) {
	reg := GetRegistry()
	hist := reg.NewHistogram("test_hist_seconds", "测试直方图", []string{}, []float64{0.1, 1.0})

	hist.Observe(0.05)
	hist.Observe(0.5)
	hist.Observe(2.0)

	hist.mu.RLock()
	defer hist.mu.RUnlock()
	counts := hist.counts[""]
	if counts[0] != 1 { // <=0.1
		t.Errorf("bucket 0.1 count = %d, want 1", counts[0])
	}
	if counts[1] != 2 { // <=1.0
		t.Errorf("bucket 1.0 count = %d, want 2", counts[1])
	}
	if counts[2] != 3 { // +Inf
		t.Errorf("+Inf bucket count = %d, want 3", counts[2])
	}
	if diff := hist.sums[""] - 2.55; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("sum = %f, want 2.55", hist.sums[""])
	}
}

func TestDefaultMetricsRegistered(t *testing.T) {
	reg := GetRegistry()

	for _, name := range []string{
		"schedman_http_requests_total",
		"schedman_rule_evaluations_total",
		"schedman_rule_violations_total",
		"schedman_validation_checks_total",
		"schedman_validation_requests_total",
	} {
		if reg.GetCounter(name) == nil {
			t.Errorf("default counter %q is not registered", name)
		}
	}
	if reg.GetGauge("schedman_db_connections") == nil {
		t.Error("default gauge schedman_db_connections is not registered")
	}
	if reg.GetHistogram("schedman_http_request_duration_seconds") == nil {
		t.Error("default histogram schedman_http_request_duration_seconds is not registered")
	}
}

func TestHandlerOutput(t *testing.T) {
	RecordRuleEvaluation("workload", false)
	RecordRuleViolation("workload", true)
	RecordValidationCheck("availability", true)
	RecordValidationRequest(false, 3*time.Millisecond)
	RecordRequestMetrics("POST", "/api/v1/validate/assignment", 200, 2*time.Millisecond)
	SetDBConnections("open", 4)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q, want text/plain", ct)
	}

	body, _ := io.ReadAll(rec.Body)
	text := string(body)

	for _, want := range []string{
		"# TYPE schedman_rule_evaluations_total counter",
		`schedman_rule_evaluations_total{rule_type="workload",result="violated"}`,
		`schedman_rule_violations_total{rule_type="workload",strict="strict"}`,
		`schedman_validation_requests_total{outcome="rejected"}`,
		`schedman_db_connections{state="open"}`,
		"schedman_validation_duration_seconds_count",
		`schedman_http_requests_total{method="POST",path="/api/v1/validate/assignment",status="200"}`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
