package tags_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/outfitly/outfitly-cli/api"
	"github.com/outfitly/outfitly-cli/session"
	"github.com/outfitly/outfitly-cli/session/keyringfake"
	"github.com/outfitly/outfitly-cli/tags"
)

func setupService(t *testing.T, handler http.Handler) *tags.Service {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store, err := session.NewStore(keyringfake.NewFakeKeyring())
	require.NoError(t, err)
	require.NoError(t, store.Login("token-1", "refresh-1"))

	client, err := api.New(server.URL, store)
	require.NoError(t, err)

	service, err := tags.NewService(client)
	require.NoError(t, err)
	return service
}

func TestServiceList(t *testing.T) {
	t.Run("tags envelope", func(t *testing.T) {
		var gotPath string
		service := setupService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			fmt.Fprint(w, `{"tags":[{"id":"t1","name":"casual","color":"#112233","count":4}]}`)
		}))

		list, err := service.List(t.Context())
		require.NoError(t, err)
		require.Equal(t, "/tags/get-tags", gotPath)
		require.Len(t, list, 1)
		require.Equal(t, "casual", list[0].Name)
		require.Equal(t, "#112233", list[0].Color)
		require.Equal(t, 4, list[0].OutfitCount)
	})

	t.Run("bare array envelope", func(t *testing.T) {
		service := setupService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[{"id":"t1","name":"casual"}]`)
		}))

		list, err := service.List(t.Context())
		require.NoError(t, err)
		require.Len(t, list, 1)
	})
}

func TestServiceCreate(t *testing.T) {
	t.Run("empty color falls back to the default swatch", func(t *testing.T) {
		var gotBody map[string]string
		service := setupService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			fmt.Fprint(w, `{"id":"t9","name":"formal","color":"#3B82F6"}`)
		}))

		tag, err := service.Create(t.Context(), tags.Draft{Name: "formal"})
		require.NoError(t, err)
		require.Equal(t, tags.DefaultColor, gotBody["color"])
		require.Equal(t, "t9", tag.ID)
	})

	t.Run("name is required", func(t *testing.T) {
		service := setupService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		}))

		_, err := service.Create(t.Context(), tags.Draft{})
		require.Error(t, err)
	})
}

func TestServiceUpdate(t *testing.T) {
	var gotMethod, gotPath string
	service := setupService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"id":"t1","name":"smart casual","color":"#112233"}`)
	}))

	tag, err := service.Update(t.Context(), "t1", tags.Draft{Name: "smart casual", Color: "#112233"})
	require.NoError(t, err)
	require.Equal(t, http.MethodPut, gotMethod)
	require.Equal(t, "/tags/update-tag/t1", gotPath)
	require.Equal(t, "smart casual", tag.Name)
}

func TestServiceDelete(t *testing.T) {
	var gotMethod, gotPath string
	service := setupService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
	}))

	require.NoError(t, service.Delete(t.Context(), "t1"))
	require.Equal(t, http.MethodDelete, gotMethod)
	require.Equal(t, "/tags/delete-tag/t1", gotPath)
}
