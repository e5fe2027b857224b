package syntax

import "github.com/ausocean/h265meta/bitstream"

// SEI payload type codes for the five payloads this package supports
// (D.3); all other payloadType values are carried as raw bytes.
const (
	SEIUserDataUnregistered          = 5
	SEIRecoveryPoint                 = 6
	SEITimeCode                      = 136
	SEIMasteringDisplayColourVolume  = 137
	SEIContentLightLevel             = 144
)

// TimeCodeClockTSMax bounds num_clock_ts (D.2.27, range 0-3).
const TimeCodeClockTSMax = 3

// SEIUserDataUnregisteredPayload is user_data_unregistered() of D.2.6.
type SEIUserDataUnregisteredPayload struct {
	UUIDIsoIec11578 [16]uint32
	UserDataPayloadByte []uint32
}

// SEIRecoveryPointPayload is recovery_point() of D.2.7.
type SEIRecoveryPointPayload struct {
	RecoveryPOCCnt int32
	ExactMatchFlag int
	BrokenLinkFlag int
}

// SEITimeCodePayload is time_code() of D.2.27.
type SEITimeCodePayload struct {
	NumClockTS uint32

	ClockTimestampFlag  [TimeCodeClockTSMax]int
	UnitsFieldBasedFlag [TimeCodeClockTSMax]int
	CountingType        [TimeCodeClockTSMax]uint32
	FullTimestampFlag   [TimeCodeClockTSMax]int
	DiscontinuityFlag   [TimeCodeClockTSMax]int
	CntDroppedFlag      [TimeCodeClockTSMax]int
	NFrames             [TimeCodeClockTSMax]uint32

	SecondsValue [TimeCodeClockTSMax]uint32
	MinutesValue [TimeCodeClockTSMax]uint32
	HoursValue   [TimeCodeClockTSMax]uint32
	SecondsFlag  [TimeCodeClockTSMax]int
	MinutesFlag  [TimeCodeClockTSMax]int
	HoursFlag    [TimeCodeClockTSMax]int

	TimeOffsetLength [TimeCodeClockTSMax]uint32
	TimeOffsetValue  [TimeCodeClockTSMax]int32
}

// SEIMasteringDisplayColourVolumePayload is mastering_display_colour_volume()
// of D.2.28.
type SEIMasteringDisplayColourVolumePayload struct {
	DisplayPrimariesX          [3]uint32
	DisplayPrimariesY          [3]uint32
	WhitePointX                uint32
	WhitePointY                uint32
	MaxDisplayMasteringLuminance uint32
	MinDisplayMasteringLuminance uint32
}

// SEIContentLightLevelPayload is content_light_level_info() of D.2.35.
type SEIContentLightLevelPayload struct {
	MaxContentLightLevel      uint32
	MaxPicAverageLightLevel   uint32
}

// SEIMessage is sei_message() of D.2.1: a payload type and size
// followed by a typed payload. Unrecognized payload types are kept as
// raw bytes in Raw rather than dropped, so a writer can reproduce them.
type SEIMessage struct {
	PayloadType uint32
	PayloadSize uint32

	UserDataUnregistered         SEIUserDataUnregisteredPayload
	RecoveryPoint                SEIRecoveryPointPayload
	TimeCode                     SEITimeCodePayload
	MasteringDisplayColourVolume SEIMasteringDisplayColourVolumePayload
	ContentLightLevel            SEIContentLightLevelPayload

	Raw []uint32

	// RawPayload is the canonical serialization of the payload above
	// (every byte of sei_payload() after payload_type/payload_size),
	// for all payload types including the five known ones. It is built
	// once by WriteSEIPayload when a message is queued with ctx.AddSEI,
	// rather than re-derived from the typed fields on every write.
	// ReadWriteSEIMessage does not fill it on read.
	RawPayload []byte
}

// ReadWriteSEIMessage reads or writes one sei_message(). When writing
// and m carries a RawPayload built by WriteSEIPayload (every message
// queued via ctx.AddSEI does), those bytes are replayed verbatim
// instead of re-deriving the payload from the typed fields, matching
// the canonical raw payload the original always emits from h265_sei's
// raw buffer.
func ReadWriteSEIMessage(op Op, m *SEIMessage, writing bool) {
	op.BeginStruct("sei_message")
	op.FFCoded(&m.PayloadType, "payload_type")
	op.FFCoded(&m.PayloadSize, "payload_size")
	if writing && m.RawPayload != nil {
		op.BeginArray("sei_payload", len(m.RawPayload))
		for i := range m.RawPayload {
			b := uint32(m.RawPayload[i])
			op.U(&b, 8, "sei_payload")
		}
		op.EndArray()
		op.EndStruct()
		return
	}
	switch m.PayloadType {
	case SEIUserDataUnregistered:
		readWriteUserDataUnregistered(op, &m.UserDataUnregistered, int(m.PayloadSize))
	case SEIRecoveryPoint:
		readWriteRecoveryPoint(op, &m.RecoveryPoint)
	case SEITimeCode:
		readWriteTimeCode(op, &m.TimeCode)
	case SEIMasteringDisplayColourVolume:
		readWriteMasteringDisplayColourVolume(op, &m.MasteringDisplayColourVolume)
	case SEIContentLightLevel:
		readWriteContentLightLevel(op, &m.ContentLightLevel)
	default:
		if len(m.Raw) != int(m.PayloadSize) {
			m.Raw = make([]uint32, m.PayloadSize)
		}
		op.BeginArray("reserved_payload_extension_data", len(m.Raw))
		for i := range m.Raw {
			op.U(&m.Raw[i], 8, "reserved_payload_extension_data")
		}
		op.EndArray()
	}
	op.EndStruct()
}

func readWriteUserDataUnregistered(op Op, p *SEIUserDataUnregisteredPayload, payloadSize int) {
	op.BeginStruct("user_data_unregistered")
	op.BeginArray("uuid_iso_iec_11578", 16)
	for i := 0; i < 16; i++ {
		op.U(&p.UUIDIsoIec11578[i], 8, "uuid_iso_iec_11578")
	}
	op.EndArray()
	n := payloadSize - 16
	if n < 0 {
		n = 0
	}
	if len(p.UserDataPayloadByte) != n {
		p.UserDataPayloadByte = make([]uint32, n)
	}
	op.BeginArray("user_data_payload_byte", n)
	for i := range p.UserDataPayloadByte {
		op.U(&p.UserDataPayloadByte[i], 8, "user_data_payload_byte")
	}
	op.EndArray()
	op.EndStruct()
}

func readWriteRecoveryPoint(op Op, p *SEIRecoveryPointPayload) {
	op.BeginStruct("recovery_point")
	op.SE(&p.RecoveryPOCCnt, "recovery_poc_cnt")
	op.Flag(&p.ExactMatchFlag, "exact_match_flag")
	op.Flag(&p.BrokenLinkFlag, "broken_link_flag")
	op.EndStruct()
}

func readWriteTimeCode(op Op, p *SEITimeCodePayload) {
	op.BeginStruct("time_code")
	op.U(&p.NumClockTS, 2, "num_clock_ts")
	op.BeginArray("clock_timestamp", int(p.NumClockTS))
	for i := 0; i < int(p.NumClockTS); i++ {
		op.Flag(&p.ClockTimestampFlag[i], "clock_timestamp_flag")
		if p.ClockTimestampFlag[i] == 0 {
			continue
		}
		op.Flag(&p.UnitsFieldBasedFlag[i], "units_field_based_flag")
		op.U(&p.CountingType[i], 5, "counting_type")
		op.Flag(&p.FullTimestampFlag[i], "full_timestamp_flag")
		op.Flag(&p.DiscontinuityFlag[i], "discontinuity_flag")
		op.Flag(&p.CntDroppedFlag[i], "cnt_dropped_flag")
		op.U(&p.NFrames[i], 9, "n_frames")
		if p.FullTimestampFlag[i] != 0 {
			op.U(&p.SecondsValue[i], 6, "seconds_value")
			op.U(&p.MinutesValue[i], 6, "minutes_value")
			op.U(&p.HoursValue[i], 5, "hours_value")
		} else {
			op.Flag(&p.SecondsFlag[i], "seconds_flag")
			if p.SecondsFlag[i] != 0 {
				op.U(&p.SecondsValue[i], 6, "seconds_value")
				op.Flag(&p.MinutesFlag[i], "minutes_flag")
				if p.MinutesFlag[i] != 0 {
					op.U(&p.MinutesValue[i], 6, "minutes_value")
					op.Flag(&p.HoursFlag[i], "hours_flag")
					if p.HoursFlag[i] != 0 {
						op.U(&p.HoursValue[i], 5, "hours_value")
					}
				}
			}
		}
		if p.UnitsFieldBasedFlag[i] != 0 {
			op.U(&p.TimeOffsetLength[i], 5, "time_offset_length")
			if p.TimeOffsetLength[i] > 0 {
				op.I(&p.TimeOffsetValue[i], int(p.TimeOffsetLength[i]), "time_offset_value")
			}
		}
	}
	op.EndArray()
	op.EndStruct()
}

func readWriteMasteringDisplayColourVolume(op Op, p *SEIMasteringDisplayColourVolumePayload) {
	op.BeginStruct("mastering_display_colour_volume")
	op.BeginArray("display_primaries", 3)
	for c := 0; c < 3; c++ {
		op.U(&p.DisplayPrimariesX[c], 16, "display_primaries_x")
		op.U(&p.DisplayPrimariesY[c], 16, "display_primaries_y")
	}
	op.EndArray()
	op.U(&p.WhitePointX, 16, "white_point_x")
	op.U(&p.WhitePointY, 16, "white_point_y")
	op.U(&p.MaxDisplayMasteringLuminance, 32, "max_display_mastering_luminance")
	op.U(&p.MinDisplayMasteringLuminance, 32, "min_display_mastering_luminance")
	op.EndStruct()
}

func readWriteContentLightLevel(op Op, p *SEIContentLightLevelPayload) {
	op.BeginStruct("content_light_level_info")
	op.U(&p.MaxContentLightLevel, 16, "max_content_light_level")
	op.U(&p.MaxPicAverageLightLevel, 16, "max_pic_average_light_level")
	op.EndStruct()
}

// WriteSEIPayload serializes m's typed payload (or Raw, for an
// unrecognized payload type) to its canonical byte form with a
// private, non-emulation-prevention bitstream, the one-shot
// write-and-acquire round trip h265_ctx_add_sei runs on every SEI
// message it queues. m.PayloadSize is set from the result's length
// before serialization, so size-dependent payloads (user data) encode
// the right number of bytes, and again after, as the authoritative
// value.
func WriteSEIPayload(m *SEIMessage) ([]byte, error) {
	switch m.PayloadType {
	case SEIUserDataUnregistered:
		m.PayloadSize = uint32(16 + len(m.UserDataUnregistered.UserDataPayloadByte))
	case SEIRecoveryPoint, SEITimeCode, SEIMasteringDisplayColourVolume, SEIContentLightLevel:
		// Self-describing fixed/variable structures; payload_size is
		// not consulted while encoding them.
	default:
		m.PayloadSize = uint32(len(m.Raw))
	}

	w := bitstream.NewWriter(false)
	op := NewWriteOp(w)
	switch m.PayloadType {
	case SEIUserDataUnregistered:
		readWriteUserDataUnregistered(op, &m.UserDataUnregistered, int(m.PayloadSize))
	case SEIRecoveryPoint:
		readWriteRecoveryPoint(op, &m.RecoveryPoint)
	case SEITimeCode:
		readWriteTimeCode(op, &m.TimeCode)
	case SEIMasteringDisplayColourVolume:
		readWriteMasteringDisplayColourVolume(op, &m.MasteringDisplayColourVolume)
	case SEIContentLightLevel:
		readWriteContentLightLevel(op, &m.ContentLightLevel)
	default:
		op.BeginArray("reserved_payload_extension_data", len(m.Raw))
		for i := range m.Raw {
			op.U(&m.Raw[i], 8, "reserved_payload_extension_data")
		}
		op.EndArray()
	}
	if err := op.Err(); err != nil {
		return nil, err
	}
	if !w.ByteAligned() {
		// sei_payload() ends with payload_bit_equal_to_one and zero
		// bits up to the byte boundary (D.2.1).
		if err := w.WriteRBSPTrailingBits(); err != nil {
			return nil, err
		}
	}

	raw, err := w.AcquireBuffer()
	if err != nil {
		return nil, err
	}
	m.PayloadSize = uint32(len(raw))
	return raw, nil
}

// SEI is sei_rbsp() of D.2.1: a sequence of sei_message() until no
// more RBSP data remains.
type SEI struct {
	Messages []SEIMessage
}

// ReadWriteSEI reads or writes sei_rbsp(). On read, op.MoreRBSPData()
// drives how many messages are appended to Messages; on write, the
// caller must have populated Messages before calling.
func ReadWriteSEI(op Op, s *SEI, writing bool) {
	op.BeginStruct("sei_rbsp")
	if writing {
		for i := range s.Messages {
			ReadWriteSEIMessage(op, &s.Messages[i], true)
		}
	} else {
		for {
			s.Messages = append(s.Messages, SEIMessage{})
			ReadWriteSEIMessage(op, &s.Messages[len(s.Messages)-1], false)
			if !op.MoreRBSPData() {
				break
			}
		}
	}
	op.RBSPTrailingBits()
	op.EndStruct()
}
