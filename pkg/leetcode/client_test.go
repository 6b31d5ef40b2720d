package leetcode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFetchQuestionListDecodesPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var request graphqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		require.Contains(t, request.Query, "problemsetQuestionList")
		require.Equal(t, float64(0), request.Variables["skip"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"problemsetQuestionList":{"questions":[
			{"title":"Two Sum","titleSlug":"two-sum","difficulty":"Easy","acRate":49.1,"paidOnly":false,"topicTags":[{"name":"Array","slug":"array"}]},
			{"title":"Premium","titleSlug":"premium","difficulty":"Hard","paidOnly":true}
		]}}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	questions, err := client.FetchQuestionList(context.Background(), 0, 50)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	require.Equal(t, "two-sum", questions[0].TitleSlug)
	require.NotNil(t, questions[0].AcRate)
	require.InDelta(t, 49.1, *questions[0].AcRate, 0.001)
	require.Nil(t, questions[1].AcRate, "missing optional field decodes to nil")
	require.True(t, questions[1].PaidOnly)
}

func TestFetchQuestionDetailToleratesMissingFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"question":{"title":"Two Sum","titleSlug":"two-sum","content":"<p>Given...</p>"}}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	detail, err := client.FetchQuestionDetail(context.Background(), "two-sum")
	require.NoError(t, err)
	require.Equal(t, "Two Sum", detail.Title)
	require.Empty(t, detail.Hints)
	require.Empty(t, detail.CodeSnippets)
}

func TestFetchQuestionDetailNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"question":null}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.FetchQuestionDetail(context.Background(), "nope")
	require.Error(t, err)
}

func TestFetchQuestionListNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.FetchQuestionList(context.Background(), 0, 50)
	require.Error(t, err)
}
