package ratelimit

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacerBounds(t *testing.T) {
	p := NewPacer(100, 1, 10)
	assert.Equal(t, 10.0, p.Limit(), "initial rate clamps to max")

	p = NewPacer(0.1, 1, 10)
	assert.Equal(t, 1.0, p.Limit(), "initial rate clamps to min")
}

func TestObserveRateLimited(t *testing.T) {
	p := NewPacer(8, 1, 10)
	rlErr := &discordgo.RateLimitError{}

	p.Observe(rlErr)
	assert.Equal(t, 4.0, p.Limit())

	p.Observe(rlErr)
	p.Observe(rlErr)
	p.Observe(rlErr)
	assert.Equal(t, 1.0, p.Limit(), "never drops below min")

	// Success right after a slow-down holds the pace down.
	p.Observe(nil)
	assert.Equal(t, 1.0, p.Limit())
}

func TestObserveSuccessRecovers(t *testing.T) {
	p := NewPacer(2, 1, 10)
	p.Observe(nil)
	assert.Equal(t, 3.0, p.Limit(), "quiet success speeds up by min step")
}

func TestObserveOtherErrorsIgnored(t *testing.T) {
	p := NewPacer(5, 1, 10)
	p.Observe(errors.New("boom"))
	assert.Equal(t, 5.0, p.Limit())
}

func TestIsRateLimited(t *testing.T) {
	assert.True(t, IsRateLimited(&discordgo.RateLimitError{}))
	assert.True(t, IsRateLimited(&discordgo.RESTError{
		Response: &http.Response{StatusCode: http.StatusTooManyRequests},
	}))
	assert.False(t, IsRateLimited(&discordgo.RESTError{
		Response: &http.Response{StatusCode: http.StatusBadRequest},
	}))
	assert.False(t, IsRateLimited(errors.New("boom")))
	assert.False(t, IsRateLimited(nil))
}

func TestWaitHonorsContext(t *testing.T) {
	p := NewPacer(1, 1, 1)
	require.NoError(t, p.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, p.Wait(ctx))
}
