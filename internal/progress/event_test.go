package progress

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func validEvent(stage Stage) Event {
	return Event{
		CrawlID: UUIDToBytes(uuid.New()),
		TS:      time.Now().UTC(),
		Stage:   stage,
		Site:    "example.com",
		URL:     "https://example.com/blog/post",
		Status:  StatusOK,
	}
}

// TestEventValidate covers the per-stage requirements.
func TestEventValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, validEvent(StageCrawlStart).Validate())
	require.NoError(t, validEvent(StageFetchDone).Validate())
	require.NoError(t, validEvent(StagePageExtracted).Validate())

	missingID := validEvent(StageCrawlStart)
	missingID.CrawlID = [16]byte{}
	require.Error(t, missingID.Validate())

	missingTS := validEvent(StageCrawlStart)
	missingTS.TS = time.Time{}
	require.Error(t, missingTS.Validate())

	fetchNoSite := validEvent(StageFetchDone)
	fetchNoSite.Site = ""
	require.Error(t, fetchNoSite.Validate())

	fetchNoStatus := validEvent(StageFetchDone)
	fetchNoStatus.Status = ""
	require.Error(t, fetchNoStatus.Validate())

	pageNoURL := validEvent(StagePageSkipped)
	pageNoURL.URL = ""
	require.Error(t, pageNoURL.Validate())

	unknown := validEvent("SOMETHING_ELSE")
	require.Error(t, unknown.Validate())

	negativeDur := validEvent(StageFetchDone)
	negativeDur.Dur = -time.Second
	require.Error(t, negativeDur.Validate())
}

// TestUUIDRoundTrip converts to the binary form and back.
func TestUUIDRoundTrip(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	evt := Event{CrawlID: UUIDToBytes(id)}
	require.Equal(t, id, evt.CrawlUUID())
}
