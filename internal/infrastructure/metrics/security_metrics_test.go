package metrics_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Account-api/internal/infrastructure/metrics"
)

func TestSecurityMetrics_Contadores(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewSecurityMetrics(reg)

	m.LoginFailed()
	m.LoginFailed()
	m.AccountLocked()

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 4, n, "los cuatro contadores se exponen aunque valgan cero")

	expected := `
# HELP account_api_security_login_failed_total Intentos de autenticación fallidos.
# TYPE account_api_security_login_failed_total counter
account_api_security_login_failed_total 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "account_api_security_login_failed_total"))
}
