package oaisyspb

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Message is implemented by every request and reply of the oaisys.Oaisys service.
type Message interface {
	Marshal() ([]byte, error)
	Unmarshal(b []byte) error
}

var (
	_ Message = (*Empty)(nil)
	_ Message = (*StepBatchRequest)(nil)
	_ Message = (*StepBatchReply)(nil)
	_ Message = (*PoseType)(nil)
	_ Message = (*SensorModuleRequest)(nil)
	_ Message = (*StepSampleRequest)(nil)
	_ Message = (*StepSampleReply)(nil)
	_ Message = (*RenderFinishedReply)(nil)
	_ Message = (*BatchCreationFinishedReply)(nil)
	_ Message = (*SuccessMsg)(nil)
)

// Empty is the request of the three status calls.
type Empty struct{}

func (m *Empty) Marshal() ([]byte, error) { return nil, nil }

func (m *Empty) Unmarshal(b []byte) error { return walk(b, skipAll) }

type StepBatchRequest struct{}

func (m *StepBatchRequest) Marshal() ([]byte, error) { return nil, nil }

func (m *StepBatchRequest) Unmarshal(b []byte) error { return walk(b, skipAll) }

type StepBatchReply struct {
	SuccessRet bool
}

func (m *StepBatchReply) Marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return appendBool(nil, 1, m.SuccessRet), nil
}

func (m *StepBatchReply) Unmarshal(b []byte) error {
	*m = StepBatchReply{}
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return consumeBool(typ, b, &m.SuccessRet)
		}
		return 0
	})
}

// PoseType is a sensor placement: position plus unit quaternion orientation.
type PoseType struct {
	X, Y, Z        float64
	QW, QX, QY, QZ float64
}

func (m *PoseType) Marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	var b []byte
	for i, v := range [...]float64{m.X, m.Y, m.Z, m.QW, m.QX, m.QY, m.QZ} {
		b = appendDouble(b, protowire.Number(i+1), v)
	}
	return b, nil
}

func (m *PoseType) Unmarshal(b []byte) error {
	*m = PoseType{}
	fields := [...]*float64{&m.X, &m.Y, &m.Z, &m.QW, &m.QX, &m.QY, &m.QZ}
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num >= 1 && int(num) <= len(fields) {
			return consumeDouble(typ, b, fields[num-1])
		}
		return 0
	})
}

type SensorModuleRequest struct {
	Pose *PoseType
}

func (m *SensorModuleRequest) Marshal() ([]byte, error) {
	if m == nil || m.Pose == nil {
		return nil, nil
	}
	return appendMessage(nil, 1, m.Pose)
}

func (m *SensorModuleRequest) Unmarshal(b []byte) error {
	*m = SensorModuleRequest{}
	var err error
	walkErr := walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num != 1 {
			return 0
		}
		if m.Pose == nil {
			m.Pose = new(PoseType)
		}
		n, e := consumeMessage(typ, b, m.Pose)
		if e != nil {
			err = e
		}
		return n
	})
	if walkErr != nil {
		return walkErr
	}
	return err
}

type StepSampleRequest struct {
	SensorModuleRequest *SensorModuleRequest
}

func (m *StepSampleRequest) Marshal() ([]byte, error) {
	if m == nil || m.SensorModuleRequest == nil {
		return nil, nil
	}
	return appendMessage(nil, 1, m.SensorModuleRequest)
}

func (m *StepSampleRequest) Unmarshal(b []byte) error {
	*m = StepSampleRequest{}
	var err error
	walkErr := walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num != 1 {
			return 0
		}
		if m.SensorModuleRequest == nil {
			m.SensorModuleRequest = new(SensorModuleRequest)
		}
		n, e := consumeMessage(typ, b, m.SensorModuleRequest)
		if e != nil {
			err = e
		}
		return n
	})
	if walkErr != nil {
		return walkErr
	}
	return err
}

// GetPose returns the requested pose, or nil when the request carries none.
func (m *StepSampleRequest) GetPose() *PoseType {
	if m == nil || m.SensorModuleRequest == nil {
		return nil
	}
	return m.SensorModuleRequest.Pose
}

type StepSampleReply struct {
	SuccessRet bool
	BatchID    int64
	SampleID   int64
}

func (m *StepSampleReply) Marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	b := appendBool(nil, 1, m.SuccessRet)
	b = appendInt64(b, 2, m.BatchID)
	b = appendInt64(b, 3, m.SampleID)
	return b, nil
}

func (m *StepSampleReply) Unmarshal(b []byte) error {
	*m = StepSampleReply{}
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeBool(typ, b, &m.SuccessRet)
		case 2:
			return consumeInt64(typ, b, &m.BatchID)
		case 3:
			return consumeInt64(typ, b, &m.SampleID)
		}
		return 0
	})
}

type RenderFinishedReply struct {
	State        int32
	FilePathList []string
}

func (m *RenderFinishedReply) Marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	b := appendInt32(nil, 1, m.State)
	for _, p := range m.FilePathList {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendString(b, p)
	}
	return b, nil
}

func (m *RenderFinishedReply) Unmarshal(b []byte) error {
	*m = RenderFinishedReply{}
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeInt32(typ, b, &m.State)
		case 2:
			if typ != protowire.BytesType {
				return 0
			}
			s, n := protowire.ConsumeString(b)
			if n > 0 {
				m.FilePathList = append(m.FilePathList, s)
			}
			return n
		}
		return 0
	})
}

type BatchCreationFinishedReply struct {
	State int32
}

func (m *BatchCreationFinishedReply) Marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return appendInt32(nil, 1, m.State), nil
}

func (m *BatchCreationFinishedReply) Unmarshal(b []byte) error {
	*m = BatchCreationFinishedReply{}
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return consumeInt32(typ, b, &m.State)
		}
		return 0
	})
}

// SuccessMsg is the reply of EndSimulation.
type SuccessMsg struct {
	SuccessRet bool
}

func (m *SuccessMsg) Marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return appendBool(nil, 1, m.SuccessRet), nil
}

func (m *SuccessMsg) Unmarshal(b []byte) error {
	*m = SuccessMsg{}
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return consumeBool(typ, b, &m.SuccessRet)
		}
		return 0
	})
}

// fieldFunc decodes the value of one field and returns the number of bytes
// consumed. It returns 0 for fields it does not know, which are then skipped,
// and a negative protowire error code for malformed input.
type fieldFunc func(num protowire.Number, typ protowire.Type, b []byte) int

func skipAll(protowire.Number, protowire.Type, []byte) int { return 0 }

func walk(b []byte, fn fieldFunc) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		m := fn(num, typ, b)
		if m == 0 {
			m = protowire.ConsumeFieldValue(num, typ, b)
		}
		if m < 0 {
			return protowire.ParseError(m)
		}
		b = b[m:]
	}
	return nil
}

// Zero values are omitted, as proto3 does for implicit presence scalars.

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeBool(v))
}

func appendInt32(b []byte, num protowire.Number, v int32) []byte {
	return appendInt64(b, num, int64(v))
}

func appendInt64(b []byte, num protowire.Number, v int64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

func appendDouble(b []byte, num protowire.Number, v float64) []byte {
	if v == 0 && !math.Signbit(v) {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(v))
}

func appendMessage(b []byte, num protowire.Number, m Message) ([]byte, error) {
	inner, err := m.Marshal()
	if err != nil {
		return nil, err
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, inner), nil
}

func consumeBool(typ protowire.Type, b []byte, dst *bool) int {
	if typ != protowire.VarintType {
		return 0
	}
	v, n := protowire.ConsumeVarint(b)
	if n > 0 {
		*dst = protowire.DecodeBool(v)
	}
	return n
}

func consumeInt32(typ protowire.Type, b []byte, dst *int32) int {
	if typ != protowire.VarintType {
		return 0
	}
	v, n := protowire.ConsumeVarint(b)
	if n > 0 {
		*dst = int32(v)
	}
	return n
}

func consumeInt64(typ protowire.Type, b []byte, dst *int64) int {
	if typ != protowire.VarintType {
		return 0
	}
	v, n := protowire.ConsumeVarint(b)
	if n > 0 {
		*dst = int64(v)
	}
	return n
}

func consumeDouble(typ protowire.Type, b []byte, dst *float64) int {
	if typ != protowire.Fixed64Type {
		return 0
	}
	v, n := protowire.ConsumeFixed64(b)
	if n > 0 {
		*dst = math.Float64frombits(v)
	}
	return n
}

func consumeMessage(typ protowire.Type, b []byte, m Message) (int, error) {
	if typ != protowire.BytesType {
		return 0, nil
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return n, nil
	}
	return n, m.Unmarshal(v)
}
