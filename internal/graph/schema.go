package graph

// SchemaContext describes the graph layout for LLM prompts that generate or
// explain Cypher queries.
const SchemaContext = `GRAPH SCHEMA:
Node Types:
- Project: {id, name, summary, url, deployment_status}
- PainPoint: {name, popularity}
- Capability: {name, popularity}
- Industry: {name, popularity}
- Technology: {name}
- Domain: {name}
- Regulation: {name}

Relationships:
- (Project)-[:ADDRESSES]->(PainPoint)
- (Project)-[:HAS_CAPABILITY]->(Capability)
- (Project)-[:TARGETS]->(Industry)
- (Project)-[:USES_TECHNOLOGY]->(Technology)
- (Project)-[:BELONGS_TO]->(Domain)
- (Project)-[:COMPLIES_WITH]->(Regulation)
- (Project)-[:SHARES_PAIN_POINTS]-(Project)
- (Project)-[:SHARES_CAPABILITIES]-(Project)
- (Project)-[:SHARES_INDUSTRIES]-(Project)
- (Project)-[:SHARES_TECHNOLOGIES]-(Project)
- (Project)-[:SHARES_DOMAINS]-(Project)`
