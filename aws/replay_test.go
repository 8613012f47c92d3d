package aws

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zalando-incubator/aws-cloud-adapter/cloud"
)

func mustRead(testFile string) string {
	buf, err := os.ReadFile("testdata/" + testFile)
	if err != nil {
		panic(err)
	}
	return string(buf)
}

type fixture struct {
	status int
	file   string
}

type recordedRequest struct {
	action string
	form   url.Values
	body   map[string]interface{}
}

// replayServer answers EC2 query and ECS JSON requests with the testdata
// fixture registered for the action.
type replayServer struct {
	*httptest.Server
	mu       sync.Mutex
	fixtures map[string]fixture
	requests []recordedRequest
}

func newReplayServer(t *testing.T, fixtures map[string]fixture) *replayServer {
	s := &replayServer{fixtures: fixtures}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{}
		contentType := "text/xml"
		if target := r.Header.Get("X-Amz-Target"); target != "" {
			rec.action = target[strings.LastIndex(target, ".")+1:]
			raw, err := io.ReadAll(r.Body)
			if err == nil && len(raw) > 0 {
				_ = json.Unmarshal(raw, &rec.body)
			}
			contentType = "application/x-amz-json-1.1"
		} else {
			if err := r.ParseForm(); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			rec.action = r.PostForm.Get("Action")
			rec.form = r.PostForm
		}

		s.mu.Lock()
		s.requests = append(s.requests, rec)
		s.mu.Unlock()

		f, ok := s.fixtures[rec.action]
		if !ok {
			t.Errorf("unexpected action %q", rec.action)
			http.Error(w, "unexpected action", http.StatusNotImplemented)
			return
		}
		w.Header().Set("Content-Type", contentType)
		if f.status != 0 {
			w.WriteHeader(f.status)
		}
		_, _ = io.WriteString(w, mustRead(f.file))
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *replayServer) adapter() *Adapter {
	cfg := aws.Config{
		Region:       testRegion,
		Credentials:  credentials.NewStaticCredentialsProvider("AKID", "SECRET", ""),
		BaseEndpoint: aws.String(s.URL),
	}
	return NewAdapterFromConfig(cfg).WithAccountNumber(testAccount)
}

func (s *replayServer) recorded(action string) []recordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []recordedRequest
	for _, r := range s.requests {
		if r.action == action {
			result = append(result, r)
		}
	}
	return result
}

func TestReplayListSnapshots(t *testing.T) {
	srv := newReplayServer(t, map[string]fixture{
		"DescribeSnapshots": {file: "DescribeSnapshots.xml"},
	})

	filter := cloud.NewSnapshotFilterOptions().
		WithAccountNumber(testAccount).
		WithTags(map[string]string{"Name": "demo_snapshot_1"})
	got, err := srv.adapter().Snapshots().ListSnapshots(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, got, 1)

	snap := got[0]
	assert.Equal(t, "snap-1a2b3c4d", snap.ID)
	assert.Equal(t, "demo_snapshot_1", snap.Name)
	assert.Equal(t, "Daily Backup", snap.Description)
	assert.Equal(t, cloud.SnapshotStatePending, snap.State)
	assert.Equal(t, "30%", snap.Progress)
	assert.Equal(t, 15, snap.SizeInGb)
	assert.Equal(t, int64(1452148872485), snap.TimestampMillis())
	assert.Equal(t, "vol-1a2b3c4d", snap.VolumeID)
	assert.Equal(t, "demo_db_14_backup", snap.Tag("Purpose"))

	reqs := srv.recorded("DescribeSnapshots")
	require.Len(t, reqs, 1)
	assert.Equal(t, "self", reqs[0].form.Get("Owner.1"))
	assert.Equal(t, "tag:Name", reqs[0].form.Get("Filter.1.Name"))
	assert.Equal(t, "demo_snapshot_1", reqs[0].form.Get("Filter.1.Value.1"))
}

func TestReplayGetMissingSnapshot(t *testing.T) {
	srv := newReplayServer(t, map[string]fixture{
		"DescribeSnapshots": {status: http.StatusBadRequest, file: "InvalidSnapshotNotFound.xml"},
	})

	got, err := srv.adapter().Snapshots().GetSnapshot(context.Background(), "snap-00000000")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, "snap-00000000", srv.recorded("DescribeSnapshots")[0].form.Get("SnapshotId.1"))
}

func TestReplayRemoveAllSnapshotShares(t *testing.T) {
	srv := newReplayServer(t, map[string]fixture{
		"DescribeSnapshotAttribute": {file: "DescribeSnapshotAttribute.xml"},
		"ModifySnapshotAttribute":   {file: "ModifySnapshotAttribute.xml"},
	})

	require.NoError(t, srv.adapter().Snapshots().RemoveAllSnapshotShares(context.Background(), "snap-1a2b3c4d"))

	describe := srv.recorded("DescribeSnapshotAttribute")
	require.Len(t, describe, 1)
	assert.Equal(t, "snap-1a2b3c4d", describe[0].form.Get("SnapshotId"))
	assert.Equal(t, "createVolumePermission", describe[0].form.Get("Attribute"))

	modify := srv.recorded("ModifySnapshotAttribute")
	require.Len(t, modify, 2)
	assert.Equal(t, "remove", modify[0].form.Get("OperationType"))
	assert.Equal(t, "user-1a2b3c4d", modify[0].form.Get("UserId.1"))
	assert.Equal(t, "user-5a6b7c8d", modify[0].form.Get("UserId.2"))
	assert.Equal(t, "remove", modify[1].form.Get("OperationType"))
	assert.Equal(t, "all", modify[1].form.Get("UserGroup.1"))
}

func TestReplayClusters(t *testing.T) {
	srv := newReplayServer(t, map[string]fixture{
		"ListClusters":     {file: "ListClusters.json"},
		"DescribeClusters": {file: "DescribeClusters.json"},
	})
	containers := srv.adapter().Containers()

	clusters, err := containers.ListClusters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []*cloud.Cluster{{
		ID:     "arn:aws:ecs:us-east-1:123456789012:cluster/default",
		Name:   "default",
		Status: "ACTIVE",
	}}, clusters)

	describe := srv.recorded("DescribeClusters")
	require.Len(t, describe, 1)
	assert.Equal(t, []interface{}{"arn:aws:ecs:us-east-1:123456789012:cluster/default"}, describe[0].body["clusters"])

	subscribed, err := containers.IsSubscribed(context.Background())
	require.NoError(t, err)
	assert.True(t, subscribed)
}

func TestReplayMissingCluster(t *testing.T) {
	srv := newReplayServer(t, map[string]fixture{
		"DescribeClusters": {status: http.StatusBadRequest, file: "ClusterNotFound.json"},
	})

	got, err := srv.adapter().Containers().GetCluster(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}
