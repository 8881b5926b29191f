package help

const ColdstartYAML = `# statboard Quick Start

endpoint_roles:
  metric: "A single number (heuristic extraction tolerates wrapped shapes)"
  collection: "Template-like rows"
  content: "Generated-content rows"
  users: "User-like rows (deduplicated by userId, else email)"
  activity: "Activity-history rows (drives summary + most-active ranking)"

commands:
  refresh: |
    statboard refresh --config config.yaml

  refresh_fresh: |
    statboard refresh --config config.yaml --force-fetch

  refresh_json: |
    statboard refresh --config config.yaml --format json

  list_cycles: |
    statboard cycles

  cycle_details: |
    statboard cycle 5

  show_report: |
    statboard show 5

  show_cards_only: |
    statboard show 5 --fields "label,value,confidence"

  list_endpoints: |
    statboard endpoints --config config.yaml

  list_users: |
    statboard users

key_files:
  - "config.yaml (endpoint keys, URLs, roles)"
  - "statboard-results/cycle-{id}-{date}.yaml (full report per refresh)"
  - "statboard.db (cycles, slots, content, users, accesses)"

cycle_system:
  - "Cycles tracked in SQLite database"
  - "Auto-incrementing cycle IDs (1, 2, 3...)"
  - "Payloads cached by URL hash; --max-age controls reuse, --force-fetch bypasses"
  - "Use 'statboard cycles' to list all cycles"
  - "Use 'statboard cycle <id>' for details"
  - "Use 'statboard show <id>' to see the stored report"

confidence_tags:
  exact: "Read directly from the payload"
  inferred: "Recovered heuristically (wrapper keys, embedded numbers, HTML salvage)"
  fallback: "Substituted from sample data; slot listed in fallback_slots"

error_behavior:
  - "Malformed endpoint URLs: fail fast before fetching"
  - "A failed endpoint degrades only its own slot"
  - "Exit codes: 0=success, 1=partial fallback, 2=operational error, 3=auth failure"
`
