package db

import (
	"strconv"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/jsphweid/scoretime/constants"
	"github.com/jsphweid/scoretime/model"
	"github.com/pkg/errors"
)

func newClient() (*dynamodb.DynamoDB, error) {
	endpoint := constants.GetDynamoEndpoint()
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(constants.GetRegion()),
		Endpoint: &endpoint,
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not create a new DynamoDB session")
	}
	return dynamodb.New(sess), nil
}

func number(n float64) *dynamodb.AttributeValue {
	return &dynamodb.AttributeValue{N: aws.String(strconv.FormatFloat(n, 'f', -1, 64))}
}

func SummaryToItem(s model.TimelineSummary) map[string]*dynamodb.AttributeValue {
	item := map[string]*dynamodb.AttributeValue{
		"PK":          {S: aws.String(s.Name)},
		"NumParts":    number(float64(s.NumParts)),
		"NumEvents":   number(float64(s.NumEvents)),
		"NumLoops":    number(float64(s.NumLoops)),
		"NumEndings":  number(float64(s.NumEndings)),
		"Duration":    number(s.Duration),
		"Diagnostics": number(float64(s.Diagnostics)),
	}
	if s.Revision != "" {
		item["Revision"] = &dynamodb.AttributeValue{S: aws.String(s.Revision)}
	}
	if s.Title != "" {
		item["Title"] = &dynamodb.AttributeValue{S: aws.String(s.Title)}
	}
	return item
}

func readNumber(v map[string]*dynamodb.AttributeValue, key string) float64 {
	if attr, ok := v[key]; ok && attr.N != nil {
		n, _ := strconv.ParseFloat(*attr.N, 64)
		return n
	}
	return 0
}

func readString(v map[string]*dynamodb.AttributeValue, key string) string {
	if attr, ok := v[key]; ok && attr.S != nil {
		return *attr.S
	}
	return ""
}

func ItemToSummary(v map[string]*dynamodb.AttributeValue) model.TimelineSummary {
	return model.TimelineSummary{
		Name:        readString(v, "PK"),
		Revision:    readString(v, "Revision"),
		Title:       readString(v, "Title"),
		NumParts:    int(readNumber(v, "NumParts")),
		NumEvents:   int(readNumber(v, "NumEvents")),
		NumLoops:    int(readNumber(v, "NumLoops")),
		NumEndings:  int(readNumber(v, "NumEndings")),
		Duration:    readNumber(v, "Duration"),
		Diagnostics: int(readNumber(v, "Diagnostics")),
	}
}

func PutTimelineSummary(s model.TimelineSummary) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	_, err = client.PutItem(&dynamodb.PutItemInput{
		TableName: aws.String(constants.GetDynamoTable()),
		Item:      SummaryToItem(s),
	})
	if err != nil {
		return errors.Wrapf(err, "could not put summary for %s", s.Name)
	}
	return nil
}

func GetTimelineSummaries(names []string) (map[string]model.TimelineSummary, error) {
	if len(names) > constants.MaxBatchGet {
		return nil, errors.Errorf("cannot fetch more than %d summaries at once", constants.MaxBatchGet)
	}

	res := make(map[string]model.TimelineSummary)
	if len(names) == 0 {
		return res, nil
	}

	var keys []map[string]*dynamodb.AttributeValue
	for _, name := range names {
		keys = append(keys, map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(name)},
		})
	}

	client, err := newClient()
	if err != nil {
		return nil, err
	}
	table := constants.GetDynamoTable()
	dbres, err := client.BatchGetItem(&dynamodb.BatchGetItemInput{
		RequestItems: map[string]*dynamodb.KeysAndAttributes{
			table: {Keys: keys},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "Error from DynamoDB")
	}

	for _, v := range dbres.Responses[table] {
		s := ItemToSummary(v)
		res[s.Name] = s
	}
	return res, nil
}
