package search

import (
	"bytes"
	"context"
	"encoding/json"

	"example.com/westo/services/garment/config"
	"example.com/westo/services/garment/internal/models"

	"github.com/elastic/go-elasticsearch/v7"
	"github.com/elastic/go-elasticsearch/v7/esapi"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ElasticClient provides integration with Elasticsearch for QR product
// search
type ElasticClient struct {
	client *elasticsearch.Client
	index  string
}

// NewElasticClient creates a new Elasticsearch client
func NewElasticClient(cfg config.ElasticConfig) (*ElasticClient, error) {
	esConfig := elasticsearch.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.Username,
		Password:  cfg.Password,
	}

	client, err := elasticsearch.NewClient(esConfig)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Elasticsearch client")
	}

	return &ElasticClient{client: client, index: cfg.Index}, nil
}

// IndexQRProduct indexes a QR product document
func (c *ElasticClient) IndexQRProduct(ctx context.Context, product *models.QRProduct) error {
	doc := map[string]interface{}{
		"id":               product.ID.String(),
		"manufacturing_id": product.ManufacturingID,
		"cutting_id":       product.CuttingID,
		"product_name":     product.ProductName,
		"color":            product.Color,
		"size":             product.Size,
		"quantity":         product.Quantity,
		"tailor_name":      product.TailorName,
		"generated_date":   product.GeneratedDate,
	}

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "failed to marshal QR product document")
	}

	req := esapi.IndexRequest{
		Index:      c.index,
		DocumentID: product.ID.String(),
		Body:       bytes.NewReader(docJSON),
		Refresh:    "true",
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return errors.Wrap(err, "failed to execute Elasticsearch index request")
	}
	defer res.Body.Close()

	if res.IsError() {
		var e map[string]interface{}
		if err := json.NewDecoder(res.Body).Decode(&e); err != nil {
			return errors.Wrap(err, "failed to parse Elasticsearch error response")
		}
		return errors.Errorf("Elasticsearch index error: %v", e)
	}

	log.Debug().Str("manufacturing_id", product.ManufacturingID).Msg("QR product indexed")
	return nil
}

// DeleteQRProduct removes a QR product document from the index
func (c *ElasticClient) DeleteQRProduct(ctx context.Context, documentID string) error {
	req := esapi.DeleteRequest{
		Index:      c.index,
		DocumentID: documentID,
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return errors.Wrap(err, "failed to execute Elasticsearch delete request")
	}
	defer res.Body.Close()

	// A missing document is fine, the goal is absence
	if res.IsError() && res.StatusCode != 404 {
		return errors.Errorf("Elasticsearch delete error: %s", res.Status())
	}
	return nil
}

// QRProductHit is one search result document
type QRProductHit struct {
	ID              string      `json:"id"`
	ManufacturingID string      `json:"manufacturing_id"`
	CuttingID       string      `json:"cutting_id"`
	ProductName     string      `json:"product_name"`
	Color           string      `json:"color"`
	Size            models.Size `json:"size"`
	Quantity        int         `json:"quantity"`
	TailorName      string      `json:"tailor_name"`
}

// SearchQRProducts searches QR products by free text over the product
// name, color, tailor and identifiers
func (c *ElasticClient) SearchQRProducts(ctx context.Context, query string) ([]QRProductHit, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query": query,
				"fields": []string{
					"product_name", "color", "tailor_name",
					"manufacturing_id", "cutting_id",
				},
			},
		},
	}

	bodyJSON, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal search query")
	}

	req := esapi.SearchRequest{
		Index: []string{c.index},
		Body:  bytes.NewReader(bodyJSON),
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute Elasticsearch search request")
	}
	defer res.Body.Close()

	if res.IsError() {
		var e map[string]interface{}
		if err := json.NewDecoder(res.Body).Decode(&e); err != nil {
			return nil, errors.Wrap(err, "failed to parse Elasticsearch error response")
		}
		return nil, errors.Errorf("Elasticsearch search error: %v", e)
	}

	var result struct {
		Hits struct {
			Hits []struct {
				Source QRProductHit `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, errors.Wrap(err, "failed to parse Elasticsearch search response")
	}

	hits := make([]QRProductHit, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		hits = append(hits, hit.Source)
	}
	return hits, nil
}
