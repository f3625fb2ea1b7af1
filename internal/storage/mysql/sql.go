package mysql

const insertSnapshotSQL = `
INSERT INTO snapshots (id) VALUES (?)
`

// Rows land as JSON documents keyed by (snapshot_id, pos); pos is the
// row's offset in the source export, so reads reassemble source order
// no matter how batches interleave.
const insertRowsPrefix = "INSERT INTO snapshot_rows (snapshot_id, pos, doc)\nVALUES "

const promoteSnapshotSQL = `
UPDATE snapshots SET promoted_at = CURRENT_TIMESTAMP WHERE id = ?
`

// Latest promoted snapshot wins; unpromoted ones are invisible.
const latestRowsSQL = `
SELECT r.doc
FROM snapshot_rows r
JOIN (
  SELECT id
  FROM snapshots
  WHERE promoted_at IS NOT NULL
  ORDER BY promoted_at DESC, id DESC
  LIMIT 1
) s ON s.id = r.snapshot_id
ORDER BY r.pos
`

// Snapshots older than the keep horizon are swept with their rows.
const pruneSnapshotsSQL = `
DELETE s, r
FROM snapshots s
LEFT JOIN snapshot_rows r ON r.snapshot_id = s.id
WHERE s.promoted_at IS NOT NULL
  AND s.id <> (
    SELECT id FROM (
      SELECT id
      FROM snapshots
      WHERE promoted_at IS NOT NULL
      ORDER BY promoted_at DESC, id DESC
      LIMIT 1
    ) keep
  )
  AND s.created_at < DATE_SUB(CURRENT_TIMESTAMP, INTERVAL ? HOUR)
`
