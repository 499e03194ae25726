package research

import (
	"fmt"
	"strings"

	"architect/internal/agent"
)

const fallbackNote = "Based on general expertise (research unavailable)."

// fallbackResults returns a canned comparison keyed by topic keyword so the
// conversation can continue when the research provider is degraded.
func fallbackResults(in Input) agent.ResearchOutput {
	topic := strings.ToLower(in.Topic)

	switch {
	case strings.Contains(topic, "database") || strings.Contains(topic, "sql"):
		return agent.ResearchOutput{
			Topic:    in.Topic,
			Question: "Which database should we use?",
			Options: []agent.ResearchOption{
				{
					ID:      "postgresql",
					Name:    "PostgreSQL",
					Summary: "Robust relational database with excellent ACID compliance and advanced features",
					Pros: []string{
						"Strong data integrity and ACID compliance",
						"Complex query support with powerful SQL",
						"Mature ecosystem with excellent tooling",
						"Great for structured data with relationships",
					},
					Cons: []string{
						"Horizontal scaling can be challenging",
						"Schema migrations required for changes",
						"May be overkill for simple key-value data",
					},
					BestFor:   "Applications with complex relationships, financial systems, reporting",
					Citations: []agent.Citation{},
				},
				{
					ID:      "mongodb",
					Name:    "MongoDB",
					Summary: "Flexible document database ideal for rapid development and scaling",
					Pros: []string{
						"Schema flexibility for evolving data",
						"Easy horizontal scaling with sharding",
						"Great for unstructured/semi-structured data",
						"Fast development iteration",
					},
					Cons: []string{
						"Weaker consistency guarantees",
						"No complex joins without aggregation",
						"Can lead to data duplication",
					},
					BestFor:   "Content management, real-time analytics, rapid prototyping",
					Citations: []agent.Citation{},
				},
			},
			Recommendation: "PostgreSQL for data integrity needs, MongoDB for flexibility. " + fallbackNote,
		}

	case strings.Contains(topic, "cache") || strings.Contains(topic, "redis"):
		return agent.ResearchOutput{
			Topic:    in.Topic,
			Question: "Which caching solution should we use?",
			Options: []agent.ResearchOption{
				{
					ID:      "redis",
					Name:    "Redis",
					Summary: "In-memory data store with rich data structures and persistence options",
					Pros: []string{
						"Extremely fast read/write operations",
						"Rich data structures (lists, sets, hashes)",
						"Pub/sub messaging support",
						"Persistence options available",
					},
					Cons: []string{
						"Memory-bound (expensive at scale)",
						"Single-threaded command execution",
						"Clustering complexity",
					},
					BestFor:   "Session storage, real-time leaderboards, pub/sub messaging, rate limiting",
					Citations: []agent.Citation{},
				},
				{
					ID:      "memcached",
					Name:    "Memcached",
					Summary: "Simple, high-performance distributed memory caching system",
					Pros: []string{
						"Very fast for simple key-value",
						"Multi-threaded design",
						"Predictable performance",
						"Simple to operate",
					},
					Cons: []string{
						"No persistence",
						"Limited data types (strings only)",
						"No built-in clustering",
					},
					BestFor:   "Simple key-value caching, database query caching, session storage",
					Citations: []agent.Citation{},
				},
			},
			Recommendation: "Redis for feature-rich caching, Memcached for simple high-throughput. " + fallbackNote,
		}

	case strings.Contains(topic, "queue") || strings.Contains(topic, "message") || strings.Contains(topic, "kafka"):
		return agent.ResearchOutput{
			Topic:    in.Topic,
			Question: "Which message queue should we use?",
			Options: []agent.ResearchOption{
				{
					ID:      "kafka",
					Name:    "Apache Kafka",
					Summary: "Distributed event streaming platform for high-throughput data pipelines",
					Pros: []string{
						"Extremely high throughput",
						"Durable message storage with replay",
						"Strong ordering guarantees",
						"Great for event sourcing",
					},
					Cons: []string{
						"Operational complexity",
						"Higher latency than in-memory queues",
						"Steeper learning curve",
					},
					BestFor:   "Event streaming, log aggregation, real-time analytics pipelines",
					Citations: []agent.Citation{},
				},
				{
					ID:      "rabbitmq",
					Name:    "RabbitMQ",
					Summary: "Reliable message broker with flexible routing and multiple protocols",
					Pros: []string{
						"Flexible routing with exchanges",
						"Multiple protocol support (AMQP, MQTT)",
						"Easy to set up and operate",
						"Good for complex routing patterns",
					},
					Cons: []string{
						"Lower throughput than Kafka",
						"No built-in message replay",
						"Single point of failure without clustering",
					},
					BestFor:   "Task queues, microservice communication, complex routing",
					Citations: []agent.Citation{},
				},
			},
			Recommendation: "Kafka for high-throughput streaming, RabbitMQ for traditional messaging. " + fallbackNote,
		}
	}

	return agent.ResearchOutput{
		Topic:    in.Topic,
		Question: fmt.Sprintf("Which %s technology should we use?", in.Topic),
		Options: []agent.ResearchOption{
			{
				ID:        "option-1",
				Name:      "Popular Option",
				Summary:   "Research is currently unavailable. Please try again or provide more context.",
				Pros:      []string{"Unable to research at this time"},
				Cons:      []string{"Research unavailable"},
				BestFor:   "Please try again",
				Citations: []agent.Citation{},
			},
		},
		Recommendation: "Research failed. Please try again with more specific requirements.",
	}
}
