package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, UnassignedWardenDeny, cfg.Access.UnassignedWardenPolicy)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, uint32(3), cfg.Breaker.ConsecutiveFailures)
	assert.Equal(t, "hostel.events", cfg.Notifications.Exchange)
}

func TestFromViperUnknownWardenPolicyFallsBackToDeny(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("ACCESS_UNASSIGNED_WARDEN_POLICY", "everything")

	cfg := fromViper(v)
	assert.Equal(t, UnassignedWardenDeny, cfg.Access.UnassignedWardenPolicy)

	v.Set("ACCESS_UNASSIGNED_WARDEN_POLICY", " ALL ")
	cfg = fromViper(v)
	assert.Equal(t, UnassignedWardenAll, cfg.Access.UnassignedWardenPolicy)
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("soon", time.Minute))
	assert.Equal(t, 5*time.Second, parseDuration("5s", time.Minute))
}

func TestSplitAndTrim(t *testing.T) {
	assert.Nil(t, splitAndTrim(""))
	assert.Equal(t, []string{"a", "b"}, splitAndTrim(" a, ,b "))
}
