package db

import (
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/google/uuid"
	"github.com/jsphweid/engraver/constants"
	"github.com/jsphweid/engraver/score"
	"github.com/jsphweid/engraver/scorefile"
	"github.com/pkg/errors"
)

// MaxBatch is the DynamoDB BatchGetItem key limit.
const MaxBatch = 100

var ErrNotFound = errors.New("score not found")

type Store struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

// NewStore connects to the table named by DYNAMO_TABLE. DYNAMO_ENDPOINT
// points it at a local DynamoDB.
func NewStore() (*Store, error) {
	config := &aws.Config{Region: aws.String(constants.GetDynamoRegion())}
	if endpoint := constants.GetDynamoEndpoint(); endpoint != "" {
		config.Endpoint = aws.String(endpoint)
	}
	sess, err := session.NewSession(config)
	if err != nil {
		return nil, errors.Wrap(err, "could not create a new DynamoDB session")
	}
	return NewStoreWithClient(dynamodb.New(sess), constants.GetDynamoTable()), nil
}

func NewStoreWithClient(client dynamodbiface.DynamoDBAPI, table string) *Store {
	return &Store{client: client, table: table}
}

func scoreItem(id string, s *score.Score, body []byte, saved time.Time) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		"PK":       {S: aws.String(id)},
		"Title":    {S: aws.String(s.Title)},
		"Composer": {S: aws.String(s.Meta.Composer)},
		"Measures": {N: aws.String(strconv.Itoa(len(s.Movement[0].Bar)))},
		"Saved":    {N: aws.String(strconv.FormatInt(saved.Unix(), 10))},
		"Body":     {S: aws.String(string(body))},
	}
}

func scoreFromItem(item map[string]*dynamodb.AttributeValue) (*score.Score, error) {
	pk, body := item["PK"], item["Body"]
	if pk == nil || pk.S == nil || body == nil || body.S == nil {
		return nil, errors.New("malformed score item")
	}
	s, err := scorefile.Unmarshal([]byte(*body.S))
	if err != nil {
		return nil, errors.Wrapf(err, "could not decode score %v", *pk.S)
	}
	s.ID = *pk.S
	return s, nil
}

// SaveScore stores the score under its ID, assigning a new one first if it
// has none.
func (st *Store) SaveScore(s *score.Score) (string, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	body, err := scorefile.Marshal(s)
	if err != nil {
		return "", err
	}
	_, err = st.client.PutItem(&dynamodb.PutItemInput{
		TableName: aws.String(st.table),
		Item:      scoreItem(s.ID, s, body, time.Now()),
	})
	if err != nil {
		return "", errors.Wrapf(err, "could not save score %v", s.ID)
	}
	return s.ID, nil
}

func (st *Store) LoadScore(id string) (*score.Score, error) {
	out, err := st.client.GetItem(&dynamodb.GetItemInput{
		TableName: aws.String(st.table),
		Key: map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(id)},
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "could not load score %v", id)
	}
	if len(out.Item) == 0 {
		return nil, errors.Wrapf(ErrNotFound, "score %v", id)
	}
	return scoreFromItem(out.Item)
}

// GetTitles looks up the titles of stored scores. Unknown IDs are left out.
func (st *Store) GetTitles(ids []string) (map[string]string, error) {
	if len(ids) > MaxBatch {
		panic("Not supposed to pass in more than 100 ids!")
	}

	res := make(map[string]string)
	if len(ids) == 0 {
		return res, nil
	}

	var keys []map[string]*dynamodb.AttributeValue
	for _, id := range ids {
		keys = append(keys, map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(id)},
		})
	}
	out, err := st.client.BatchGetItem(&dynamodb.BatchGetItemInput{
		RequestItems: map[string]*dynamodb.KeysAndAttributes{
			st.table: {
				Keys:                 keys,
				ProjectionExpression: aws.String("PK, Title"),
			},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not get titles")
	}

	for _, v := range out.Responses[st.table] {
		if v["PK"] == nil || v["PK"].S == nil {
			continue
		}
		title := ""
		if v["Title"] != nil && v["Title"].S != nil {
			title = *v["Title"].S
		}
		res[*v["PK"].S] = title
	}
	return res, nil
}
