package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/suite"
	"github.com/umalmyha/crm/internal/model"
)

const connectionTimeout = 3 * time.Second

const (
	pgContainerName = "pg-journal-test-crm"
	pgPort          = "5433"
	pgTestUser      = "journal-test"
	pgTestPassword  = "journal-test"
	pgTestDB        = "journal-crm"
)

type journalTestSuite struct {
	suite.Suite
	dockerPool *dockertest.Pool
	postgres   *dockertest.Resource
	pgPool     *pgxpool.Pool
}

func (s *journalTestSuite) SetupSuite() {
	t := s.T()
	assert := s.Require()

	t.Log("build docker pool")
	dockerPool, err := dockertest.NewPool("")
	assert.NoError(err, "failed to create pool")

	t.Log("sending ping to docker...")
	if err := dockerPool.Client.Ping(); err != nil {
		t.Skipf("docker is not available - %v", err)
	}

	s.dockerPool = dockerPool

	t.Log("starting postgres container...")
	postgres, err := dockerPool.RunWithOptions(&dockertest.RunOptions{
		Name:       pgContainerName,
		Repository: "postgres",
		Tag:        "latest",
		Env: []string{
			fmt.Sprintf("POSTGRES_USER=%s", pgTestUser),
			fmt.Sprintf("POSTGRES_PASSWORD=%s", pgTestPassword),
			fmt.Sprintf("POSTGRES_DB=%s", pgTestDB),
		},
		PortBindings: map[docker.Port][]docker.PortBinding{
			"5432/tcp": {{HostIP: "localhost", HostPort: fmt.Sprintf("%s/tcp", pgPort)}},
		},
	})
	assert.NoError(err, "failed to start postgresql")

	s.postgres = postgres

	t.Log("connecting to postgres...")
	pgURI := fmt.Sprintf("postgres://%s:%s@localhost:%s/%s?sslmode=disable", pgTestUser, pgTestPassword, pgPort, pgTestDB)
	err = dockerPool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
		defer cancel()

		var e error
		s.pgPool, e = pgxpool.Connect(ctx, pgURI)
		if e != nil {
			return e
		}
		return s.pgPool.Ping(ctx)
	})
	assert.NoError(err, "failed to establish connection to postgresql")

	t.Log("creating journal table...")
	assert.NoError(EnsureSchema(context.Background(), s.pgPool))
	assert.NoError(EnsureSchema(context.Background(), s.pgPool), "schema creation must be repeatable")
}

func (s *journalTestSuite) TearDownSuite() {
	t := s.T()

	if s.pgPool != nil {
		t.Log("closing connection to postgres")
		s.pgPool.Close()
	}

	if s.postgres != nil {
		if err := s.dockerPool.Purge(s.postgres); err != nil {
			t.Logf("failed to purge postgres container - %v", err)
		}
	}
}

func (s *journalTestSuite) TestAppend() {
	ctx := context.Background()
	j := NewPostgresJournal(s.pgPool)

	notes := "replaced panel"
	record := &model.ServiceRecord{
		RecordID:          "SRV003",
		SerialNumber:      "SN20240001",
		CustomerID:        "CUST001",
		ServiceDate:       time.Date(2024, time.June, 10, 10, 0, 0, 0, time.UTC),
		ServiceType:       "screen repair",
		Description:       "vertical lines",
		Technician:        "Wang",
		Status:            model.ServiceScheduled,
		EstimatedDuration: 120,
		Notes:             &notes,
	}
	at := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

	s.Require().NoError(j.Append(ctx, Entry{RecordID: "SRV003", Action: ActionCreated, Record: record, Actor: "agent-1", At: at}))
	s.Require().NoError(j.Append(ctx, Entry{RecordID: "SRV003", Action: ActionDeleted, Actor: "agent-1", At: at.Add(time.Hour)}))

	rows, err := s.pgPool.Query(ctx, `SELECT action, payload, actor, created_at FROM service_record_journal WHERE record_id = $1 ORDER BY id`, "SRV003")
	s.Require().NoError(err)
	defer rows.Close()

	type row struct {
		action    string
		payload   []byte
		actor     string
		createdAt time.Time
	}

	var journaled []row
	for rows.Next() {
		var r row
		s.Require().NoError(rows.Scan(&r.action, &r.payload, &r.actor, &r.createdAt))
		journaled = append(journaled, r)
	}
	s.Require().NoError(rows.Err())
	s.Require().Len(journaled, 2)

	s.T().Log("creation carries record snapshot")
	{
		s.Assert().Equal(string(ActionCreated), journaled[0].action)
		s.Assert().Equal("agent-1", journaled[0].actor)
		s.Assert().True(at.Equal(journaled[0].createdAt))

		var snapshot model.ServiceRecord
		s.Require().NoError(json.Unmarshal(journaled[0].payload, &snapshot))
		s.Assert().Equal(record.RecordID, snapshot.RecordID)
		s.Assert().Equal(notes, *snapshot.Notes)
		s.Assert().Nil(snapshot.ActualDuration)
	}

	s.T().Log("deletion has no snapshot")
	{
		s.Assert().Equal(string(ActionDeleted), journaled[1].action)
		s.Assert().Nil(journaled[1].payload)
	}
}

func TestJournalTestSuite(t *testing.T) {
	suite.Run(t, new(journalTestSuite))
}
