package server

import (
	"context"
	"errors"
	"net/http"
	"runtime"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/deusflow/newsroom/internal/credentials"
)

const probeTimeout = 10 * time.Second

const (
	statusPass = "pass"
	statusFail = "fail"
	statusSkip = "skip"
)

type debugTest struct {
	Name    string         `json:"name"`
	Status  string         `json:"status"`
	Details map[string]any `json:"details"`
}

type recommendation struct {
	Issue    string `json:"issue"`
	Solution string `json:"solution"`
	Priority string `json:"priority"`
}

type debugSummary struct {
	TotalTests     int            `json:"totalTests"`
	Passed         int            `json:"passed"`
	Failed         int            `json:"failed"`
	Skipped        int            `json:"skipped"`
	OverallStatus  string         `json:"overallStatus"`
	Recommendation recommendation `json:"recommendation"`
}

type debugReport struct {
	Timestamp   string             `json:"timestamp"`
	Environment string             `json:"environment"`
	Credentials credentials.Report `json:"credentials"`
	Tests       []debugTest        `json:"tests"`
	Summary     debugSummary       `json:"summary"`
}

var probeExplanations = map[codes.Code]string{
	codes.InvalidArgument:   "INVALID_ARGUMENT - Check voice settings or text content",
	codes.PermissionDenied:  "PERMISSION_DENIED - Service account lacks TTS permissions",
	codes.ResourceExhausted: "RESOURCE_EXHAUSTED - TTS quota exceeded",
	codes.Unavailable:       "UNAVAILABLE - Google Cloud TTS service temporarily down",
}

// handleDebugTTS walks the TTS setup step by step: credential sources, key
// fields, client construction and one live synthesis call.
func (s *Server) handleDebugTTS(w http.ResponseWriter, r *http.Request) {
	rep := credentials.Diagnose(s.Lookup, s.Environ())

	envTest := debugTest{Name: "Environment Variable Check", Status: statusFail, Details: map[string]any{}}
	present := 0
	for _, c := range rep.Checks {
		if c.Present {
			present++
		}
	}
	envTest.Details["hasGoogleCredentials"] = present > 0
	envTest.Details["sourcesPresent"] = present
	if present > 0 {
		envTest.Status = statusPass
	} else {
		envTest.Details["availableEnvVars"] = rep.Related
	}

	keyTest := debugTest{Name: "JSON Parsing Test", Status: statusSkip, Details: map[string]any{}}
	if present > 0 {
		if rep.Selected != "" {
			keyTest.Status = statusPass
			keyTest.Details["source"] = rep.Selected
			keyTest.Details["projectId"] = rep.ProjectID
			keyTest.Details["clientEmail"] = rep.Email
		} else {
			keyTest.Status = statusFail
			keyTest.Details["error"] = "no credential source parsed into a complete service account"
		}
	}

	clientTest := debugTest{Name: "TTS Client Initialization", Status: statusSkip, Details: map[string]any{}}
	if keyTest.Status == statusPass {
		switch {
		case s.TTSInitErr != nil:
			clientTest.Status = statusFail
			clientTest.Details["error"] = s.TTSInitErr.Error()
		case s.TTSProbe != nil:
			clientTest.Status = statusPass
			clientTest.Details["message"] = "TTS Client initialized successfully"
		default:
			clientTest.Status = statusFail
			clientTest.Details["error"] = "TTS client not created, service runs in demo mode"
		}
	}

	apiTest := debugTest{Name: "TTS API Call Test", Status: statusSkip, Details: map[string]any{}}
	if clientTest.Status == statusPass {
		ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
		err := s.TTSProbe.Probe(ctx)
		cancel()
		if err != nil {
			apiTest.Status = statusFail
			apiTest.Details["error"] = err.Error()
			var se interface{ GRPCStatus() *status.Status }
			if errors.As(err, &se) {
				code := se.GRPCStatus().Code()
				apiTest.Details["errorCode"] = int(code)
				if exp, ok := probeExplanations[code]; ok {
					apiTest.Details["explanation"] = exp
				}
			}
		} else {
			apiTest.Status = statusPass
			apiTest.Details["message"] = "TTS API call successful, real audio mode active"
		}
	}

	tests := []debugTest{envTest, keyTest, clientTest, apiTest}
	sum := debugSummary{TotalTests: len(tests)}
	for _, t := range tests {
		switch t.Status {
		case statusPass:
			sum.Passed++
		case statusFail:
			sum.Failed++
		case statusSkip:
			sum.Skipped++
		}
	}
	sum.OverallStatus = "NEEDS_FIX"
	if sum.Failed == 0 && sum.Passed > 0 {
		sum.OverallStatus = "WORKING"
	}
	sum.Recommendation = recommend(tests)

	writeJSON(w, http.StatusOK, debugReport{
		Timestamp:   s.now().UTC().Format(time.RFC3339),
		Environment: runtime.Version(),
		Credentials: rep,
		Tests:       tests,
		Summary:     sum,
	})
}

func recommend(tests []debugTest) recommendation {
	env, key, client, api := tests[0], tests[1], tests[2], tests[3]
	switch {
	case env.Status != statusPass:
		return recommendation{
			Issue:    "Missing Google Cloud credentials",
			Solution: "Set GOOGLE_CLOUD_KEY_JSON, GOOGLE_CLOUD_KEY_BASE64 or GOOGLE_CLOUD_KEY_PART1..N with the service account key",
			Priority: "HIGH",
		}
	case key.Status == statusFail:
		return recommendation{
			Issue:    "Invalid service account key",
			Solution: "Ensure the JSON is complete and on a single line, or Base64 encode it",
			Priority: "HIGH",
		}
	case client.Status == statusFail:
		return recommendation{
			Issue:    "TTS Client initialization failed",
			Solution: "Check that the credentials are valid and the service can reach Google Cloud",
			Priority: "HIGH",
		}
	case api.Status == statusFail:
		return recommendation{
			Issue:    "TTS API call failed",
			Solution: "Check Google Cloud project settings, API enablement, and service account permissions",
			Priority: "MEDIUM",
		}
	}
	return recommendation{
		Issue:    "No issues detected",
		Solution: "TTS should be working in real mode!",
		Priority: "LOW",
	}
}
