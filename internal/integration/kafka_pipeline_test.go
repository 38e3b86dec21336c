//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/ShianMike/TwistedTornadoProbabilityCalculator-sub001/internal/adapter/kafka"
	"github.com/ShianMike/TwistedTornadoProbabilityCalculator-sub001/internal/config"
	"github.com/ShianMike/TwistedTornadoProbabilityCalculator-sub001/internal/domain"
	"github.com/ShianMike/TwistedTornadoProbabilityCalculator-sub001/internal/observability"
	"github.com/ShianMike/TwistedTornadoProbabilityCalculator-sub001/internal/pipeline"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

const (
	testSourceTopic = "test-observations"
	testSinkTopic   = "test-assessments"
)

// scenarios covering the full tier ladder, keyed by the tier each should land in.
var testObservations = []struct {
	key    string
	record domain.ObservationRecord
}{
	{"calm", domain.ObservationRecord{CAPE: "100", SRH: "20", PWAT: "0.5", Temp: "70", Dewpoint: "50"}},
	{"marginal", domain.ObservationRecord{CAPE: "800", SRH: "120", PWAT: "1.1", LapseRate03: "6", StormSpeed: "20"}},
	{"significant", domain.ObservationRecord{CAPE: "3500", SRH: "350", PWAT: "1.6", LapseRate03: "8", StormSpeed: "40", SurfaceRH: "70"}},
	{"violent", domain.ObservationRecord{CAPE: "6000", SRH: "600", PWAT: "1.9", LapseRate03: "9.5", StormSpeed: "55", SurfaceRH: "80", MidRH: "75", CAPE3KM: "150"}},
}

// assessedMessage holds a deserialized message read from the sink topic.
type assessedMessage struct {
	Assessment domain.Assessment
	Key        string
	Headers    map[string]string
}

// readAssessed reads a single message from the sink consumer and deserializes it.
func readAssessed(ctx context.Context, t *testing.T, consumer *kafkago.Reader) assessedMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from sink topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var assessment domain.Assessment
	require.NoError(t, json.Unmarshal(msg.Value, &assessment), "unmarshal sink message")

	return assessedMessage{
		Assessment: assessment,
		Key:        string(msg.Key),
		Headers:    headers,
	}
}

// TestKafkaReaderWriter verifies the adapter layer: kafka.Reader (Extractor) and
// kafka.Writer (Loader) correctly round-trip a message through Kafka.
func TestKafkaReaderWriter(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)

	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)

	cfg := &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaSourceTopic:   testSourceTopic,
		KafkaSinkTopic:     testSinkTopic,
		KafkaGroupID:       fmt.Sprintf("test-reader-%d", time.Now().UnixNano()),
		BatchFlushInterval: 5 * time.Second,
	}

	// Publish a violent-regime observation to the source topic.
	payload, err := json.Marshal(testObservations[3].record)
	require.NoError(t, err)

	producer := &kafkago.Writer{
		Addr:  kafkago.TCP(broker),
		Topic: testSourceTopic,
	}
	t.Cleanup(func() { _ = producer.Close() })

	require.NoError(t, producer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte("test-key"),
		Value: payload,
	}))

	// Extract via kafka.Reader.
	// Retry because the consumer group may need time to rebalance before
	// partitions are assigned and messages become available.
	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	var batch []domain.RawEvent
	for {
		var err error
		batch, err = reader.ExtractBatch(ctx, 1)
		require.NoError(t, err)
		if len(batch) > 0 {
			break
		}
		if ctx.Err() != nil {
			t.Fatal("timed out waiting for message from source topic")
		}
	}
	require.Len(t, batch, 1)
	raw := batch[0]
	assert.Equal(t, []byte("test-key"), raw.Key)
	assert.Equal(t, payload, raw.Value)
	assert.Equal(t, testSourceTopic, raw.Topic)
	require.NotNil(t, raw.Commit, "commit callback should be set")

	// Commit the offset.
	require.NoError(t, raw.Commit(ctx))

	// Transform the raw event into an assessment.
	metrics := observability.NewMetricsForTesting()
	transformer := pipeline.NewTransformer(discardLogger(), metrics)
	out, err := transformer.Transform(ctx, raw)
	require.NoError(t, err)

	// Load via kafka.Writer.
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	require.NoError(t, writer.LoadBatch(ctx, []domain.OutputEvent{out}))

	// Read from the sink topic and verify headers + value.
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	am := readAssessed(ctx, t, consumer)
	assert.Equal(t, "test-key", am.Key)
	assert.Equal(t, "HIGH", am.Headers["risk_tier"])
	_, err = time.Parse(time.RFC3339, am.Headers["computed_at"])
	assert.NoError(t, err, "computed_at should be valid RFC3339")

	assert.Equal(t, domain.TierHIGH, am.Assessment.Risk.Tier)
	assert.Len(t, am.Assessment.Types, 7)
	assert.Greater(t, am.Assessment.Wind.EstMax, am.Assessment.Wind.EstMin)
}

// TestPipelineEndToEnd wires the full pipeline (Reader -> Transformer -> Writer)
// with real Kafka and verifies every regime is assessed.
func TestPipelineEndToEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)

	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)

	cfg := &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaSourceTopic:   testSourceTopic,
		KafkaSinkTopic:     testSinkTopic,
		KafkaGroupID:       fmt.Sprintf("test-pipeline-%d", time.Now().UnixNano()),
		BatchFlushInterval: 5 * time.Second,
	}

	producer := &kafkago.Writer{
		Addr:  kafkago.TCP(broker),
		Topic: testSourceTopic,
	}
	t.Cleanup(func() { _ = producer.Close() })

	msgs := make([]kafkago.Message, 0, len(testObservations))
	for _, obs := range testObservations {
		payload, err := json.Marshal(obs.record)
		require.NoError(t, err)
		msgs = append(msgs, kafkago.Message{
			Key:   []byte(obs.key),
			Value: payload,
		})
	}
	require.NoError(t, producer.WriteMessages(ctx, msgs...))

	// Wire up the pipeline.
	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	metrics := observability.NewMetricsForTesting()
	transformer := pipeline.NewTransformer(discardLogger(), metrics)

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	p := pipeline.New(reader, transformer, writer, discardLogger(), metrics, 50)

	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	// Read all assessments from the sink topic.
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-sink-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	received := make(map[string]assessedMessage, len(testObservations))
	for len(received) < len(testObservations) {
		am := readAssessed(ctx, t, consumer)
		received[am.Key] = am
	}

	pipelineCancel()
	require.NoError(t, <-errCh)

	for key, am := range received {
		assert.NotEmpty(t, am.Headers["risk_tier"], "missing risk_tier header for %s", key)
		_, err := time.Parse(time.RFC3339, am.Headers["computed_at"])
		assert.NoError(t, err, "invalid computed_at format for %s", key)

		assert.Len(t, am.Assessment.Types, 7, "distribution for %s", key)
		total := 0
		for _, mt := range am.Assessment.Types {
			total += mt.Probability
		}
		assert.InDelta(t, 100, total, 1, "distribution sum for %s", key)
	}

	// The tier ordering across regimes must be monotone.
	calm := received["calm"].Assessment.Risk
	violent := received["violent"].Assessment.Risk
	assert.Equal(t, domain.TierTSTM, calm.Tier)
	assert.Equal(t, domain.TierHIGH, violent.Tier)
	assert.Greater(t, violent.SeverityRank(), received["marginal"].Assessment.Risk.SeverityRank())
}

// TestPipelineTransformError verifies that an invalid message (poison pill) is
// skipped and the pipeline continues processing valid messages.
func TestPipelineTransformError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)

	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)

	cfg := &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaSourceTopic:   testSourceTopic,
		KafkaSinkTopic:     testSinkTopic,
		KafkaGroupID:       fmt.Sprintf("test-poison-%d", time.Now().UnixNano()),
		BatchFlushInterval: 5 * time.Second,
	}

	validPayload, err := json.Marshal(testObservations[2].record)
	require.NoError(t, err)

	producer := &kafkago.Writer{
		Addr:  kafkago.TCP(broker),
		Topic: testSourceTopic,
	}
	t.Cleanup(func() { _ = producer.Close() })

	require.NoError(t, producer.WriteMessages(ctx,
		kafkago.Message{Key: []byte("bad"), Value: []byte("not-json{{{")},
		kafkago.Message{Key: []byte("good"), Value: validPayload},
	))

	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	metrics := observability.NewMetricsForTesting()
	transformer := pipeline.NewTransformer(discardLogger(), metrics)

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	p := pipeline.New(reader, transformer, writer, discardLogger(), metrics, 50)

	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	// Only the valid message should appear on the sink topic.
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-sink-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	am := readAssessed(ctx, t, consumer)
	assert.Equal(t, "good", am.Key)
	assert.NotEmpty(t, am.Headers["risk_tier"])

	// Verify no second message arrives (the poison pill was skipped).
	readCtx, readCancel := context.WithTimeout(ctx, 5*time.Second)
	_, err = consumer.ReadMessage(readCtx)
	readCancel()
	assert.Error(t, err, "expected no second message on sink topic")

	pipelineCancel()
	require.NoError(t, <-errCh)
}

// --- helpers ---

// startKafka launches a single-node Kafka container and returns its broker address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("test-cluster"),
	)
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate kafka container: %v", err)
		}
	})

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err, "resolve kafka brokers")
	require.NotEmpty(t, brokers)
	return brokers[0]
}

// createTopic creates a single-partition topic on the broker's controller.
func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err, "dial broker")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "resolve controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err, "dial controller")
	defer controllerConn.Close()

	require.NoError(t, controllerConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}), "create topic %s", topic)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
