package syntax

// ScalingListData is scaling_list_data() of clause 7.3.4: a 4 (sizeID)
// by 6 (matrixID) grid, each cell either a predictor index or an
// explicit DC-plus-delta coefficient list.
type ScalingListData struct {
	PredModeFlag      [4][6]int
	PredMatrixIDDelta [4][6]uint32
	DCCoefMinus8      [4][6]int32
	DeltaCoef         [4][6][64]int32

	// Value holds the derived ScalingList[sizeId][matrixId][i] entries
	// (7.3.4), computed from DeltaCoef by the running nextCoef sum.
	// It is not itself a syntax element and is never read or written.
	Value [4][6][64]int32
}

// ReadWriteScalingListData reads or writes scaling_list_data().
func ReadWriteScalingListData(op Op, s *ScalingListData) {
	op.BeginStruct("scaling_list_data")
	for sizeID := 0; sizeID < 4; sizeID++ {
		step := 1
		if sizeID == 3 {
			step = 3
		}
		for matrixID := 0; matrixID < 6; matrixID += step {
			op.Flag(&s.PredModeFlag[sizeID][matrixID], "scaling_list_pred_mode_flag")
			if s.PredModeFlag[sizeID][matrixID] == 0 {
				op.UE(&s.PredMatrixIDDelta[sizeID][matrixID], "scaling_list_pred_matrix_id_delta")
				continue
			}
			coefNum := 64
			if w := 1 << (4 + sizeID*2); w < coefNum {
				coefNum = w
			}
			nextCoef := int32(8)
			if sizeID > 1 {
				op.SE(&s.DCCoefMinus8[sizeID][matrixID], "scaling_list_dc_coef_minus8")
				nextCoef = s.DCCoefMinus8[sizeID][matrixID] + 8
			}
			op.BeginArray("scaling_list_delta_coef", coefNum)
			for i := 0; i < coefNum; i++ {
				op.SE(&s.DeltaCoef[sizeID][matrixID][i], "scaling_list_delta_coef")
				nextCoef = (nextCoef + s.DeltaCoef[sizeID][matrixID][i] + 256) % 256
				s.Value[sizeID][matrixID][i] = nextCoef
			}
			op.EndArray()
		}
	}
	op.EndStruct()
}
