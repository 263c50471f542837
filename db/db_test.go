package db

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/engraver/score"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

// fakeDynamo keeps items in memory keyed by PK.
type fakeDynamo struct {
	dynamodbiface.DynamoDBAPI
	items map[string]map[string]*dynamodb.AttributeValue
	fail  error
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: map[string]map[string]*dynamodb.AttributeValue{}}
}

func (f *fakeDynamo) PutItem(in *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	f.items[*in.Item["PK"].S] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(in *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	return &dynamodb.GetItemOutput{Item: f.items[*in.Key["PK"].S]}, nil
}

func (f *fakeDynamo) BatchGetItem(in *dynamodb.BatchGetItemInput) (*dynamodb.BatchGetItemOutput, error) {
	out := &dynamodb.BatchGetItemOutput{Responses: map[string][]map[string]*dynamodb.AttributeValue{}}
	for table, ka := range in.RequestItems {
		for _, key := range ka.Keys {
			if item, ok := f.items[*key["PK"].S]; ok {
				out.Responses[table] = append(out.Responses[table], item)
			}
		}
	}
	return out, nil
}

func TestSaveAndLoadScore(t *testing.T) {
	assert := assert.New(t)
	fake := newFakeDynamo()
	store := NewStoreWithClient(fake, "scores")

	s := score.New(1)
	s.Title = "\u00c9tude"
	s.SetWholePitch(score.NewCursor(0, 0, 0, 0))
	id, err := store.SaveScore(s)
	assert.NoError(err)
	assert.NotEmpty(id)
	assert.Equal(id, s.ID)

	item := fake.items[id]
	assert.Equal("\u00c9tude", *item["Title"].S)
	assert.Equal("1", *item["Measures"].N)
	assert.Contains(*item["Body"].S, "notes: 1/1C4")

	loaded, err := store.LoadScore(id)
	assert.NoError(err)
	assert.Equal(s, loaded)

	again, err := store.SaveScore(loaded)
	assert.NoError(err)
	assert.Equal(id, again, "existing ids are kept")
}

func TestLoadMissingScore(t *testing.T) {
	store := NewStoreWithClient(newFakeDynamo(), "scores")
	_, err := store.LoadScore("nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStoreErrors(t *testing.T) {
	assert := assert.New(t)
	fake := newFakeDynamo()
	fake.fail = errors.New("throttled")
	store := NewStoreWithClient(fake, "scores")

	_, err := store.SaveScore(score.New(1))
	assert.Error(err)
	_, err = store.LoadScore("x")
	assert.Error(err)
	assert.False(errors.Is(err, ErrNotFound))
}

func TestScoreFromItem(t *testing.T) {
	assert := assert.New(t)
	_, err := scoreFromItem(map[string]*dynamodb.AttributeValue{"PK": {S: aws.String("a")}})
	assert.Error(err)

	_, err = scoreFromItem(map[string]*dynamodb.AttributeValue{
		"PK":   {S: aws.String("a")},
		"Body": {S: aws.String("movement: [")},
	})
	assert.Error(err)

	item := scoreItem("a", score.New(3), []byte("{}"), time.Unix(1700000000, 0))
	assert.Equal("1700000000", *item["Saved"].N)
	s, err := scoreFromItem(item)
	assert.NoError(err)
	assert.Equal("a", s.ID)
}

func TestGetTitles(t *testing.T) {
	assert := assert.New(t)
	store := NewStoreWithClient(newFakeDynamo(), "scores")
	s := score.New(1)
	s.Title = "Nocturne"
	id, err := store.SaveScore(s)
	assert.NoError(err)

	titles, err := store.GetTitles([]string{id, "unknown"})
	assert.NoError(err)
	assert.Equal(map[string]string{id: "Nocturne"}, titles)

	titles, err = store.GetTitles(nil)
	assert.NoError(err)
	assert.Empty(titles)

	assert.Panics(func() { store.GetTitles(make([]string, MaxBatch+1)) })
}
