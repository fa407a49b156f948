package masaapi_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/effective-security/masamcp/cache"
	"github.com/effective-security/masamcp/masaapi"
	"github.com/effective-security/masamcp/mocks/mockmasa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAPI_CachedWithDoer(t *testing.T) {
	ctrl := gomock.NewController(t)
	doer := mockmasa.NewMockDoer(ctrl)

	doer.EXPECT().
		Do(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *masaapi.Request, out any) error {
			assert.Equal(t, http.MethodGet, req.Method)
			assert.Equal(t, "/api/v1/search/live/twitter/status/a%20b", req.Path)
			assert.Equal(t, masaapi.PathSearchLiveTwitterStatus, req.Route)
			out.(*masaapi.LiveTwitterSearchJobStatus).Status = "done"
			return nil
		}).
		Times(1)

	api := masaapi.New(doer, cache.NewManager(), nil)
	ctx := context.Background()

	for range 3 {
		res, err := api.GetLiveTwitterSearchStatus(ctx, "a b")
		require.NoError(t, err)
		assert.Equal(t, "done", res.Status)
	}
}

func TestAPI_ErrorUnchanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	doer := mockmasa.NewMockDoer(ctrl)

	expErr := &masaapi.StatusError{StatusCode: http.StatusUnauthorized, Status: "401 Unauthorized"}
	doer.EXPECT().Do(gomock.Any(), gomock.Any(), gomock.Any()).Return(expErr).Times(2)

	api := masaapi.New(doer, cache.NewManager(), nil)

	_, err := api.AnalyzeData(context.Background(), []string{"t"}, "p")
	assert.Same(t, expErr, err)
	_, err = api.AnalyzeData(context.Background(), []string{"t"}, "p")
	assert.Same(t, expErr, err)
}
