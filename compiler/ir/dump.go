package ir

import "github.com/nikandfor/tlog/tlwire"

func (b *Bind) TlogAppend(buf []byte) []byte {
	var e tlwire.Encoder

	buf = e.AppendMap(buf, 2)
	buf = e.AppendKeyInt64(buf, "temp", int64(b.TempIndex))
	buf = e.AppendKeyInt64(buf, "ssa", int64(b.ssaIndex))

	return buf
}

func (p *Phi) TlogAppend(buf []byte) []byte {
	var e tlwire.Encoder

	buf = e.AppendMap(buf, 2)
	buf = e.AppendKeyInt64(buf, "ssa", int64(p.ssaIndex))
	buf = e.AppendKeyInt64(buf, "arity", int64(len(p.Inputs)))

	return buf
}

func (x *Branch) TlogAppend(buf []byte) []byte {
	var e tlwire.Encoder

	buf = e.AppendMap(buf, 2)
	buf = e.AppendKeyInt64(buf, "true", int64(blockID(x.TrueSuccessor)))
	buf = e.AppendKeyInt64(buf, "false", int64(blockID(x.FalseSuccessor)))

	return buf
}

func (t *TargetEntry) TlogAppend(buf []byte) []byte {
	var e tlwire.Encoder

	buf = e.AppendMap(buf, 2)
	buf = e.AppendKeyInt64(buf, "id", int64(t.id))
	buf = e.AppendKeyInt64(buf, "try", int64(t.TryIndex))

	return buf
}

func (j *JoinEntry) TlogAppend(buf []byte) []byte {
	var e tlwire.Encoder

	buf = e.AppendMap(buf, 2)
	buf = e.AppendKeyInt64(buf, "id", int64(j.id))
	buf = e.AppendKeyInt64(buf, "preds", int64(len(j.Preds)))

	return buf
}

func (c *CatchEntry) TlogAppend(buf []byte) []byte {
	var e tlwire.Encoder

	buf = e.AppendMap(buf, 3)
	buf = e.AppendKeyInt64(buf, "id", int64(c.id))
	buf = e.AppendKeyInt64(buf, "try", int64(c.TryIndex))
	buf = e.AppendKeyInt64(buf, "types", int64(len(c.HandlerTypes)))

	return buf
}

func blockID(b BlockEntry) int {
	if b == nil {
		return -1
	}

	return b.ID()
}
